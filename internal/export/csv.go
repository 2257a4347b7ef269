package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/LJTian/HeadlineHub/internal/collector"
)

type Header [2]string

var (
	SpanishHeader = Header{"Fuente", "Titular"}
	EnglishHeader = Header{"Source", "Headline"}
)

var ErrBadHeader = errors.New("export: unexpected csv header")

// WriteCSV 表头之后每条标题一行
func WriteCSV(w io.Writer, table collector.ResultTable, header Header) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header[:]); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, h := range table {
		if err := cw.Write([]string{h.Source, h.Text}); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV 读取 WriteCSV 的输出，中英两种表头都接受
func ReadCSV(r io.Reader) (collector.ResultTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("export: read header: %w", err)
	}
	if got := (Header{head[0], head[1]}); got != SpanishHeader && got != EnglishHeader {
		return nil, fmt.Errorf("%w: %q", ErrBadHeader, head)
	}

	table := make(collector.ResultTable, 0)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("export: read row: %w", err)
		}
		table = append(table, collector.Headline{Source: rec[0], Text: rec[1]})
	}
	return table, nil
}

package export

import (
	"io"

	"github.com/LJTian/HeadlineHub/internal/collector"
	"github.com/jedib0t/go-pretty/v6/table"
)

// 先输出标题表，有失败站点时再输出失败表
func RenderTable(w io.Writer, res collector.Result, header Header) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", header[0], header[1]})
	for i, h := range res.Headlines {
		t.AppendRow(table.Row{i + 1, h.Source, h.Text})
	}
	t.AppendFooter(table.Row{"", "", len(res.Headlines)})
	t.Render()

	if len(res.Failures) == 0 {
		return
	}
	f := table.NewWriter()
	f.SetOutputMirror(w)
	f.SetStyle(table.StyleLight)
	f.AppendHeader(table.Row{header[0], "Kind", "Reason"})
	for _, fail := range res.Failures {
		f.AppendRow(table.Row{fail.Source, fail.Kind, fail.Reason})
	}
	f.Render()
}

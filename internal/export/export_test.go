package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/LJTian/HeadlineHub/internal/collector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRoundTrip(t *testing.T) {
	in := collector.ResultTable{
		{Source: "Clarín", Text: "Dólar hoy: a cuánto cotiza"},
		{Source: "La Nación", Text: `Comillas "dobles", y comas`},
		{Source: "Olé", Text: "Línea\ncon salto"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, in, SpanishHeader))
	assert.True(t, strings.HasPrefix(buf.String(), "Fuente,Titular\n"))

	out, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCSVEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, EnglishHeader))
	assert.Equal(t, "Source,Headline\n", buf.String())

	out, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestReadCSVRejectsUnknownHeader(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\nx,y\n"))
	require.ErrorIs(t, err, ErrBadHeader)

	_, err = ReadCSV(strings.NewReader("Fuente,Titular\nonly-one-field\n"))
	require.Error(t, err)
}

func TestRenderTableListsFailures(t *testing.T) {
	res := collector.Result{
		Headlines: collector.ResultTable{{Source: "Infobae", Text: "Titular uno"}},
		Failures:  []collector.Failure{{Source: "Olé", Kind: collector.FailureTransport, Reason: "timeout"}},
	}

	var buf bytes.Buffer
	RenderTable(&buf, res, SpanishHeader)
	out := buf.String()
	assert.Contains(t, out, "Titular uno")
	assert.Contains(t, strings.ToUpper(out), "FUENTE")
	assert.Contains(t, out, "timeout")
}

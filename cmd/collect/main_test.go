package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/LJTian/HeadlineHub/internal/collector"
	"github.com/LJTian/HeadlineHub/internal/export"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListFlagPrintsSourceNames(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--list"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Clarín")
	assert.Contains(t, out.String(), "Olé")
}

func TestUnknownSourceFails(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--sources", "Nope"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source")
}

func TestWriteCSVFile(t *testing.T) {
	table := collector.ResultTable{
		{Source: "Clarín", Text: "Uno"},
		{Source: "Olé", Text: "Dos, con coma"},
	}
	path := filepath.Join(t.TempDir(), "titulares.csv")
	require.NoError(t, writeCSVFile(path, table, export.SpanishHeader))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := export.ReadCSV(f)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestWriteCSVFileBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	require.Error(t, writeCSVFile(path, nil, export.SpanishHeader))
}

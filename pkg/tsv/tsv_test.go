package tsv

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFrom(t *testing.T) {
	in := "#Chr\tStart\tACMG\n1\t100\tPathogenic\n2\t200\tBenign\n"

	table, err := ReadFrom(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"#Chr", "Start", "ACMG"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1", "100", "Pathogenic"}, table.Rows[0])
	assert.Equal(t, []string{"2", "200", "Benign"}, table.Rows[1])
}

func TestReadFrom_Empty(t *testing.T) {
	_, err := ReadFrom(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadFrom_HeaderOnly(t *testing.T) {
	table, err := ReadFrom(strings.NewReader("#Chr\tStart\n"))
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestReadFrom_SkipsBlankLines(t *testing.T) {
	table, err := ReadFrom(strings.NewReader("a\tb\n\n1\t2\n"))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
}

func TestReadFrom_RaggedRows(t *testing.T) {
	table, err := ReadFrom(strings.NewReader("a\tb\tc\n1\t2\n1\t2\t3\t4\n"))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Len(t, table.Rows[0], 2)
	assert.Len(t, table.Rows[1], 4)
}

func TestWriteTo_RoundTrip(t *testing.T) {
	table := &Table{
		Header: []string{"#Chr", "Start", "Note"},
		Rows: [][]string{
			{"1", "100", `has "quotes" and, commas`},
			{"2", "200", ""},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTo(&buf, table))

	got, err := ReadFrom(&buf)
	require.NoError(t, err)
	assert.Equal(t, table.Header, got.Header)
	assert.Equal(t, table.Rows, got.Rows)
}

func TestWriteTo_NoTable(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteTo(&buf, nil))
	assert.Error(t, WriteTo(&buf, &Table{}))
}

func TestReadWrite_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "variants.tsv")

	table := &Table{
		Header: []string{"a", "b"},
		Rows:   [][]string{{"1", "2"}},
	}
	require.NoError(t, Write(path, table))

	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, table.Header, got.Header)
	assert.Equal(t, table.Rows, got.Rows)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\n1\t2\n", string(b))
}

func TestRead_NoFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.tsv"))
	assert.Error(t, err)
}

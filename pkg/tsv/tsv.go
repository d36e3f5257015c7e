// Package tsv reads and writes the tab-separated variant tables produced by
// the annotation pipeline. Fields are carried verbatim: no quoting, no
// escaping, no type interpretation.
package tsv

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

const (
	sep = "\t"

	// Annotation fields can run long (full transcript lists etc.).
	maxLineBytes = 16 * 1024 * 1024
)

// Table is one tabular dataset: a header and its rows, all opaque strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// Read loads a TSV file. The first line is the header.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open input: %s", path)
	}
	defer f.Close()

	t, err := ReadFrom(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read input: %s", path)
	}
	return t, nil
}

// ReadFrom parses TSV content. Rows may carry fewer or more fields than the
// header; they are preserved as-is. Blank lines are skipped.
func ReadFrom(r io.Reader) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	t := &Table{}
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if t.Header == nil {
			t.Header = strings.Split(line, sep)
			continue
		}
		t.Rows = append(t.Rows, strings.Split(line, sep))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to scan input")
	}
	if t.Header == nil {
		return nil, errors.New("input has no header row")
	}
	return t, nil
}

// Write saves the table to a file.
func Write(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create output: %s", path)
	}

	if err := WriteTo(f, t); err != nil {
		f.Close()
		return errors.Wrapf(err, "failed to write output: %s", path)
	}

	return errors.Wrapf(f.Close(), "failed to close output: %s", path)
}

// WriteTo writes the table as TSV.
func WriteTo(w io.Writer, t *Table) error {
	if t == nil || t.Header == nil {
		return errors.New("table with header required")
	}

	bw := bufio.NewWriter(w)
	if err := writeLine(bw, t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writeLine(bw, row); err != nil {
			return err
		}
	}
	return errors.Wrap(bw.Flush(), "failed to flush output")
}

func writeLine(w *bufio.Writer, fields []string) error {
	if _, err := w.WriteString(strings.Join(fields, sep)); err != nil {
		return errors.Wrap(err, "failed to write row")
	}
	if err := w.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "failed to write row")
	}
	return nil
}

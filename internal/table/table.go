// Package table is a minimal string table backed by CSV files.
package table

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
)

// utf8BOM is written at the start of every CSV so spreadsheet tools detect UTF-8
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrNoHeader is returned when a CSV file has no header row
var ErrNoHeader = errors.New("csv has no header row")

// Table holds a header and rows of string cells. Every row has len(Header) cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// New creates an empty table with the given columns
func New(header ...string) *Table {
	return &Table{Header: slices.Clone(header)}
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Append adds a row, padding or truncating it to the header width
func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, t.fit(cells))
}

func (t *Table) fit(cells []string) []string {
	row := make([]string, len(t.Header))
	copy(row, cells)
	return row
}

// Column returns the index of name, or -1
func (t *Table) Column(name string) int {
	return slices.Index(t.Header, name)
}

// HasColumn reports whether name is in the header
func (t *Table) HasColumn(name string) bool {
	return t.Column(name) >= 0
}

// EnsureColumn returns the index of name, appending an empty column if needed
func (t *Table) EnsureColumn(name string) int {
	if i := t.Column(name); i >= 0 {
		return i
	}
	t.Header = append(t.Header, name)
	for i := range t.Rows {
		t.Rows[i] = append(t.Rows[i], "")
	}
	return len(t.Header) - 1
}

// Get returns the cell at row/column name, or "" if the column is missing
func (t *Table) Get(row int, name string) string {
	col := t.Column(name)
	if col < 0 {
		return ""
	}
	return t.Rows[row][col]
}

// Set writes a cell, creating the column if needed
func (t *Table) Set(row int, name, value string) {
	col := t.EnsureColumn(name)
	t.Rows[row][col] = value
}

// Values returns a copy of one column
func (t *Table) Values(name string) []string {
	col := t.Column(name)
	if col < 0 {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[col]
	}
	return out
}

// RenameColumns renames headers using mapping (old -> new). A rename is
// skipped when the target name already exists, so repeated calls are no-ops.
func (t *Table) RenameColumns(mapping map[string]string) {
	for i, name := range t.Header {
		target, ok := mapping[name]
		if !ok || target == name || t.HasColumn(target) {
			continue
		}
		t.Header[i] = target
	}
}

// SortStableFunc reorders rows with a stable sort
func (t *Table) SortStableFunc(cmp func(a, b []string) int) {
	slices.SortStableFunc(t.Rows, cmp)
}

// ReadCSV loads a comma-separated file, stripping a leading UTF-8 BOM
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// Read parses CSV from r. Short rows are padded to the header width.
func Read(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, err
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	t := New(records[0]...)
	for _, rec := range records[1:] {
		if len(rec) > len(t.Header) {
			return nil, fmt.Errorf("row has %d fields, header has %d", len(rec), len(t.Header))
		}
		t.Append(rec...)
	}
	return t, nil
}

// WriteCSV writes the table with a UTF-8 BOM
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := t.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// Write encodes the table as CSV with a leading BOM
func (t *Table) Write(w io.Writer) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return err
	}
	return cw.Error()
}

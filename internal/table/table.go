// Package table reads a delimited input file into an in-memory tabular
// form: a header plus string rows, padded to a uniform width.
package table

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/vk/fileformatgo/internal/ctxlog"
)

// Table is one input file held in memory. All cells are strings; type
// conversion is the validator's job, not the reader's.
type Table struct {
	// Header holds the column names from the first non-skipped line.
	// Surplus unnamed columns are named _x0, _x1, ...
	Header []string
	// Rows holds the data rows, each padded to len(Header) cells.
	Rows [][]string
}

// InputError reports that the input data file could not be opened or read
// at all. It is the only condition under which no Report is produced.
type InputError struct {
	Path string
	Err  error
}

// Error implements the error interface for InputError.
func (e *InputError) Error() string {
	return fmt.Sprintf("cannot read input file %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *InputError) Unwrap() error { return e.Err }

// ReadCSV reads the file at path into a Table, discarding the first
// skipRows lines before the header. Ragged rows are accepted: short rows
// are padded with empty cells, and header slots for surplus columns are
// generated as _x0, _x1, ...
func ReadCSV(ctx context.Context, path string, skipRows int) (*Table, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Reading input file.", "path", path, "skip_rows", skipRows)

	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	defer f.Close()

	t, err := parseCSV(f, skipRows)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	logger.Debug("Input file read.", "columns", len(t.Header), "rows", len(t.Rows))
	return t, nil
}

func parseCSV(r io.Reader, skipRows int) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are a validation concern, not a read error

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if skipRows > len(records) {
		skipRows = len(records)
	}
	records = records[skipRows:]
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row found")
	}

	width := 0
	for _, row := range records {
		if len(row) > width {
			width = len(row)
		}
	}

	header := records[0]
	for i := len(header); i < width; i++ {
		header = append(header, fmt.Sprintf("_x%d", i-len(records[0])))
	}

	rows := make([][]string, 0, len(records)-1)
	for _, row := range records[1:] {
		rows = append(rows, resize(width, row))
	}

	return &Table{Header: header, Rows: rows}, nil
}

// resize pads the row with empty cells up to width n.
func resize(n int, row []string) []string {
	for len(row) < n {
		row = append(row, "")
	}
	return row
}

// Column returns the values of the column at index idx, one per data row.
func (t *Table) Column(idx int) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values
}

// ColumnIndex returns the index of the named header column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// IsBlankRow reports whether every cell of data row i is empty.
func (t *Table) IsBlankRow(i int) bool {
	for _, cell := range t.Rows[i] {
		if cell != "" {
			return false
		}
	}
	return true
}

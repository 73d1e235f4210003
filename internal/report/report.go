// Package report defines the outcome types of a validation run: individual
// issues with their locators, and the aggregate Report returned to callers.
package report

import (
	"fmt"

	"github.com/google/uuid"
)

// Status is the final verdict of a validation run.
type Status string

const (
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
)

// Level distinguishes issues that concern the whole file from issues tied
// to a single row.
type Level string

const (
	LevelFile Level = "file"
	LevelRow  Level = "row"
)

// Issue kinds produced by the built-in checks.
const (
	KindColumnsMissing    = "columns_missing"
	KindUnexpectedColumns = "unexpected_columns"
	KindBlankRow          = "blank_row"
	KindBlankColumn       = "blank_column"
	KindDuplicateValue    = "duplicate_value"
	KindInvalidPattern    = "invalid_pattern"
	KindInvalidOption     = "invalid_value"
	KindMissingValue      = "missing_value"
	KindInvalidValue      = "invalid-value"
	KindInternalError     = "internal_error"
)

// Issue records one detected deviation from the format specification.
// Row-level issues carry a locator: Row is the 1-based data row index
// (the header is row 0), Column is the column name, Value the offending
// cell content.
type Issue struct {
	Level   Level  `json:"level"`
	Kind    string `json:"kind"`
	Message string `json:"message"`

	Row    int    `json:"row,omitempty"`
	Column string `json:"column,omitempty"`
	Value  string `json:"value,omitempty"`
}

// String renders the issue in the short form used for terminal output.
func (e *Issue) String() string {
	if e.Level == LevelFile {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("[%s#%d] %s: %s", e.Column, e.Row, e.Kind, e.Message)
}

// Report is the aggregate outcome of validating one file against one
// format specification. Issues are appended during the run; the status is
// always derived from the issue set via Finalize, never set directly.
type Report struct {
	Status    Status  `json:"status"`
	Filename  string  `json:"filename,omitempty"`
	RunID     string  `json:"run_id"`
	TotalRows int     `json:"total_rows"`
	Issues    []Issue `json:"issues"`
}

// New creates an empty report for a run over the given number of data rows.
func New(totalRows int) *Report {
	return &Report{
		Status:    StatusAccepted,
		RunID:     uuid.NewString(),
		TotalRows: totalRows,
		Issues:    []Issue{},
	}
}

// AddFileIssue records a file-level issue.
func (r *Report) AddFileIssue(kind, message string) {
	r.Issues = append(r.Issues, Issue{
		Level:   LevelFile,
		Kind:    kind,
		Message: message,
	})
}

// AddRowIssue records a row-level issue with its locator.
func (r *Report) AddRowIssue(kind, message string, row int, column, value string) {
	r.Issues = append(r.Issues, Issue{
		Level:   LevelRow,
		Kind:    kind,
		Message: message,
		Row:     row,
		Column:  column,
		Value:   value,
	})
}

// ErrorCount returns the number of issues found so far.
func (r *Report) ErrorCount() int {
	return len(r.Issues)
}

// RejectedRowCount returns the number of distinct data rows that have at
// least one row-level issue.
func (r *Report) RejectedRowCount() int {
	rows := make(map[int]struct{})
	for _, e := range r.Issues {
		if e.Level == LevelRow {
			rows[e.Row] = struct{}{}
		}
	}
	return len(rows)
}

// HasFileIssues reports whether any file-level issue was recorded.
func (r *Report) HasFileIssues() bool {
	for _, e := range r.Issues {
		if e.Level == LevelFile {
			return true
		}
	}
	return false
}

// Finalize derives the status from the issue set and returns the report.
func (r *Report) Finalize() *Report {
	if len(r.Issues) == 0 {
		r.Status = StatusAccepted
	} else {
		r.Status = StatusRejected
	}
	return r
}

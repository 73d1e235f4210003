package process

import (
	"fmt"
	"strings"

	"github.com/vk/fileformatgo/internal/report"
	"github.com/vk/fileformatgo/internal/table"
)

// checkMissingColumns records a single file-level issue naming every
// declared header label absent from the input file.
func (e *Engine) checkMissingColumns(t *table.Table, rep *report.Report) {
	present := make(map[string]struct{}, len(t.Header))
	for _, h := range t.Header {
		present[h] = struct{}{}
	}

	var missing []string
	for _, label := range e.format.ExpectedLabels() {
		if _, ok := present[label]; !ok {
			missing = append(missing, label)
		}
	}
	if len(missing) > 0 {
		rep.AddFileIssue(
			report.KindColumnsMissing,
			"Required columns missing: "+strings.Join(missing, ", "))
	}
}

// checkAdditionalColumns records a single file-level issue naming every
// header column the specification does not declare.
func (e *Engine) checkAdditionalColumns(t *table.Table, rep *report.Report) {
	declared := make(map[string]struct{})
	for _, label := range e.format.ExpectedLabels() {
		declared[label] = struct{}{}
	}

	var extra []string
	for _, h := range t.Header {
		if _, ok := declared[h]; !ok {
			extra = append(extra, h)
		}
	}
	if len(extra) > 0 {
		rep.AddFileIssue(
			report.KindUnexpectedColumns,
			"Found unexpected additional columns: "+strings.Join(extra, ", "))
	}
}

// checkBlankRows records one row-level issue per all-empty data row.
func (e *Engine) checkBlankRows(t *table.Table, rep *report.Report) {
	for i := range t.Rows {
		if t.IsBlankRow(i) {
			rep.AddRowIssue(
				report.KindBlankRow,
				"Row has no values",
				rowIndex(i), "", "")
		}
	}
}

// checkBlankColumns records one file-level issue per empty header cell.
// A blank column is defined by its header: a position in the header row
// with no name (the alternative reading, a named header with no data,
// is an ordinary optional column and not an error).
func (e *Engine) checkBlankColumns(t *table.Table, rep *report.Report) {
	for i, h := range t.Header {
		if h == "" || strings.HasPrefix(h, "_x") {
			rep.AddFileIssue(
				report.KindBlankColumn,
				fmt.Sprintf("Column %d has no header", i+1))
		}
	}
}

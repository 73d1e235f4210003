package report

import (
	"io"
	"os"

	"github.com/goccy/go-json"
)

// document is the wire shape of a serialized report. The counts are
// derived at encoding time so they can never disagree with the issue set.
type document struct {
	Status           Status  `json:"status"`
	Filename         string  `json:"filename,omitempty"`
	RunID            string  `json:"run_id"`
	TotalRows        int     `json:"total_rows"`
	ErrorCount       int     `json:"error_count"`
	RejectedRowCount int     `json:"rejected_row_count"`
	Issues           []Issue `json:"issues"`
}

// WriteJSON encodes the report as an indented JSON document.
func (r *Report) WriteJSON(w io.Writer) error {
	doc := document{
		Status:           r.Status,
		Filename:         r.Filename,
		RunID:            r.RunID,
		TotalRows:        r.TotalRows,
		ErrorCount:       r.ErrorCount(),
		RejectedRowCount: r.RejectedRowCount(),
		Issues:           r.Issues,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteJSONFile writes the JSON document to the given path.
func (r *Report) WriteJSONFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.WriteJSON(f)
}

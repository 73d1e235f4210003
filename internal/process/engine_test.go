package process

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/fileformatgo/internal/config"
	"github.com/vk/fileformatgo/internal/report"
	"github.com/vk/fileformatgo/internal/table"
)

func customerFormat() *config.Format {
	return &config.Format{
		Name: "customers",
		Columns: []*config.Column{
			{Name: "customer_id", Datatype: config.TypeInteger, Required: true},
			{Name: "name", Datatype: config.TypeString, Required: true},
		},
	}
}

func newTable(header []string, rows ...[]string) *table.Table {
	return &table.Table{Header: header, Rows: rows}
}

func mustEngine(t *testing.T, f *config.Format) *Engine {
	t.Helper()
	e, err := New(f)
	require.NoError(t, err)
	return e
}

func TestEngine_CleanFileAccepted(t *testing.T) {
	e := mustEngine(t, customerFormat())
	rep := e.Run(context.Background(), newTable(
		[]string{"customer_id", "name"},
		[]string{"1", "Acme"},
		[]string{"2", "Globex"},
	))

	assert.Equal(t, report.StatusAccepted, rep.Status)
	assert.Equal(t, 0, rep.ErrorCount())
	assert.Equal(t, 2, rep.TotalRows)
}

func TestEngine_MissingRequiredColumn(t *testing.T) {
	e := mustEngine(t, customerFormat())
	rep := e.Run(context.Background(), newTable(
		[]string{"customer_id"},
		[]string{"1"},
	))

	assert.Equal(t, report.StatusRejected, rep.Status)
	require.Len(t, rep.Issues, 1)
	e0 := rep.Issues[0]
	assert.Equal(t, report.KindColumnsMissing, e0.Kind)
	assert.Equal(t, report.LevelFile, e0.Level)
	assert.Contains(t, e0.Message, "name")
}

func TestEngine_UnexpectedColumn(t *testing.T) {
	e := mustEngine(t, customerFormat())
	rep := e.Run(context.Background(), newTable(
		[]string{"customer_id", "name", "surprise"},
		[]string{"1", "Acme", "x"},
	))

	assert.Equal(t, report.StatusRejected, rep.Status)
	require.Len(t, rep.Issues, 1)
	assert.Equal(t, report.KindUnexpectedColumns, rep.Issues[0].Kind)
	assert.Contains(t, rep.Issues[0].Message, "surprise")
}

// The structural verdict comes first: with a broken header no cell-level
// issues are reported at all.
func TestEngine_StructuralIssuesShortCircuit(t *testing.T) {
	e := mustEngine(t, customerFormat())
	rep := e.Run(context.Background(), newTable(
		[]string{"customer_id", "wrong"},
		[]string{"not-a-number", ""},
	))

	assert.Equal(t, report.StatusRejected, rep.Status)
	for _, issue := range rep.Issues {
		assert.Equal(t, report.LevelFile, issue.Level)
	}
}

func TestEngine_RequiredFieldMissing(t *testing.T) {
	// The canonical example: customer_id (integer, required), name
	// (string, required); one row `,Acme`.
	e := mustEngine(t, customerFormat())
	rep := e.Run(context.Background(), newTable(
		[]string{"customer_id", "name"},
		[]string{"", "Acme"},
	))

	assert.Equal(t, report.StatusRejected, rep.Status)
	require.Len(t, rep.Issues, 1)
	e0 := rep.Issues[0]
	assert.Equal(t, report.KindMissingValue, e0.Kind)
	assert.Equal(t, 1, e0.Row)
	assert.Equal(t, "customer_id", e0.Column)
	assert.Equal(t, 1, rep.RejectedRowCount())
}

func TestEngine_BlankRows(t *testing.T) {
	f := customerFormat()
	f.Options.ForbidBlankRows = true
	f.Columns[0].Required = false
	f.Columns[1].Required = false

	e := mustEngine(t, f)
	rep := e.Run(context.Background(), newTable(
		[]string{"customer_id", "name"},
		[]string{"1", "Acme"},
		[]string{"", ""},
		[]string{"2", "Globex"},
		[]string{"", ""},
	))

	assert.Equal(t, report.StatusRejected, rep.Status)

	var blanks []report.Issue
	for _, issue := range rep.Issues {
		if issue.Kind == report.KindBlankRow {
			blanks = append(blanks, issue)
		}
	}
	require.Len(t, blanks, 2)
	assert.Equal(t, 2, blanks[0].Row)
	assert.Equal(t, 4, blanks[1].Row)
}

func TestEngine_BlankColumns(t *testing.T) {
	f := customerFormat()
	f.Options.ForbidBlankColumns = true
	f.Options.IgnoreAdditionalColumns = true

	e := mustEngine(t, f)
	rep := e.Run(context.Background(), newTable(
		[]string{"customer_id", "name", ""},
		[]string{"1", "Acme", "x"},
	))

	assert.Equal(t, report.StatusRejected, rep.Status)

	var found bool
	for _, issue := range rep.Issues {
		if issue.Kind == report.KindBlankColumn {
			found = true
			assert.Contains(t, issue.Message, "Column 3")
		}
	}
	assert.True(t, found, "expected a blank_column issue")
}

func TestEngine_TypeIssueLocator(t *testing.T) {
	e := mustEngine(t, customerFormat())
	rep := e.Run(context.Background(), newTable(
		[]string{"customer_id", "name"},
		[]string{"1", "Acme"},
		[]string{"twenty", "Globex"},
	))

	assert.Equal(t, report.StatusRejected, rep.Status)
	require.Len(t, rep.Issues, 1)
	e0 := rep.Issues[0]
	assert.Equal(t, report.KindInvalidValue, e0.Kind)
	assert.Equal(t, 2, e0.Row)
	assert.Equal(t, "customer_id", e0.Column)
}

func TestEngine_DefaultAppliedBeforeTypeCheck(t *testing.T) {
	f := &config.Format{
		Name: "orders",
		Columns: []*config.Column{
			{Name: "qty", Datatype: config.TypeInteger, Required: false, Default: "0"},
		},
	}

	e := mustEngine(t, f)
	rep := e.Run(context.Background(), newTable(
		[]string{"qty"},
		[]string{""},
		[]string{"5"},
	))

	assert.Equal(t, report.StatusAccepted, rep.Status)
}

func TestEngine_Idempotent(t *testing.T) {
	e := mustEngine(t, customerFormat())
	input := newTable(
		[]string{"customer_id", "name"},
		[]string{"", "Acme"},
		[]string{"x", "Globex"},
	)

	first := e.Run(context.Background(), input)
	second := e.Run(context.Background(), input)

	diff := cmp.Diff(first, second, cmpopts.IgnoreFields(report.Report{}, "RunID"))
	assert.Empty(t, diff)
}

func TestEngine_RepeatLastColumn(t *testing.T) {
	f := &config.Format{
		Name: "wide",
		Columns: []*config.Column{
			{Name: "id", Datatype: config.TypeInteger, Required: true},
			{Name: "reading", Datatype: config.TypeFloat, Required: false},
		},
		Options: config.Options{RepeatLastColumn: true},
	}

	e := mustEngine(t, f)
	rep := e.Run(context.Background(), newTable(
		[]string{"id", "reading", "r2", "r3"},
		[]string{"1", "1.5", "2.5", "oops"},
	))

	assert.Equal(t, report.StatusRejected, rep.Status)
	require.Len(t, rep.Issues, 1)
	e0 := rep.Issues[0]
	assert.Equal(t, report.KindInvalidValue, e0.Kind)
	assert.Equal(t, "r3", e0.Column)
}

func TestEngine_RowValidators(t *testing.T) {
	RegisterRowValidator("qty_requires_price", func(row int, record map[string]string, rep *report.Report) {
		if record["qty"] != "" && record["price"] == "" {
			rep.AddRowIssue("qty_without_price", "Quantity given without a price", row, "price", "")
		}
	})

	f := &config.Format{
		Name: "orders",
		Columns: []*config.Column{
			{Name: "qty", Datatype: config.TypeInteger, Required: false},
			{Name: "price", Datatype: config.TypeFloat, Required: false},
		},
		Options: config.Options{Validators: []string{"qty_requires_price"}},
	}

	e := mustEngine(t, f)
	rep := e.Run(context.Background(), newTable(
		[]string{"qty", "price"},
		[]string{"2", "9.99"},
		[]string{"3", ""},
	))

	assert.Equal(t, report.StatusRejected, rep.Status)
	require.Len(t, rep.Issues, 1)
	assert.Equal(t, "qty_without_price", rep.Issues[0].Kind)
	assert.Equal(t, 2, rep.Issues[0].Row)
}

func TestEngine_UnknownRowValidator(t *testing.T) {
	f := customerFormat()
	f.Options.Validators = []string{"no_such_validator"}

	_, err := New(f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_validator")
}

// A check blowing up mid-run must surface as a single internal_error issue,
// not as a panic or an error: the caller always gets a complete report.
func TestEngine_PanicBecomesInternalError(t *testing.T) {
	RegisterRowValidator("always_panics", func(row int, record map[string]string, rep *report.Report) {
		panic(fmt.Sprintf("boom on row %d", row))
	})

	f := customerFormat()
	f.Options.Validators = []string{"always_panics"}

	e := mustEngine(t, f)
	rep := e.Run(context.Background(), newTable(
		[]string{"customer_id", "name"},
		[]string{"1", "Acme"},
	))

	assert.Equal(t, report.StatusRejected, rep.Status)
	require.Len(t, rep.Issues, 1)
	e0 := rep.Issues[0]
	assert.Equal(t, report.KindInternalError, e0.Kind)
	assert.Contains(t, e0.Message, "boom")
}

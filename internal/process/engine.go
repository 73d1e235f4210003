package process

import (
	"context"
	"fmt"

	"github.com/vk/fileformatgo/internal/config"
	"github.com/vk/fileformatgo/internal/ctxlog"
	"github.com/vk/fileformatgo/internal/report"
	"github.com/vk/fileformatgo/internal/table"
)

// Engine applies one format specification to tabular input and aggregates
// everything the checks find into a Report. An Engine is stateless across
// runs and safe to reuse.
type Engine struct {
	format        *config.Format
	rowValidators []namedRowValidator
}

type namedRowValidator struct {
	name string
	fn   RowValidator
}

// New creates an Engine for the given format. Registered row validators
// named by the format's options are resolved here: an unknown name is a
// configuration error, not a validation issue.
func New(format *config.Format) (*Engine, error) {
	e := &Engine{format: format}
	for _, name := range format.Options.Validators {
		fn, ok := lookupRowValidator(name)
		if !ok {
			return nil, config.NewConfigurationError("", "unknown row validator %q", name)
		}
		e.rowValidators = append(e.rowValidators, namedRowValidator{name: name, fn: fn})
	}
	return e, nil
}

// ProcessFile reads the file at path and validates it against the format.
// The only error it returns is an unreadable input file; every other
// failure mode ends up inside the Report.
func (e *Engine) ProcessFile(ctx context.Context, path string) (*report.Report, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Processing file.", "path", path, "format", e.format.Name)

	t, err := table.ReadCSV(ctx, path, e.format.Options.SkipRows)
	if err != nil {
		return nil, err
	}

	rep := e.Run(ctx, t)
	rep.Filename = path
	return rep, nil
}

// Run validates an in-memory table against the format. It always returns a
// complete Report: a check that fails unexpectedly is converted into a
// single internal_error issue instead of propagating.
func (e *Engine) Run(ctx context.Context, t *table.Table) (rep *report.Report) {
	logger := ctxlog.FromContext(ctx)
	rep = report.New(len(t.Rows))

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Validation failed with internal error.", "error", r)
			rep.AddFileIssue(report.KindInternalError, fmt.Sprint(r))
			rep.Finalize()
		}
	}()

	e.run(ctx, t, rep)
	return rep.Finalize()
}

func (e *Engine) run(ctx context.Context, t *table.Table, rep *report.Report) {
	logger := ctxlog.FromContext(ctx)
	opts := e.format.Options

	if !opts.IgnoreAdditionalColumns && !opts.RepeatLastColumn {
		e.checkAdditionalColumns(t, rep)
	}
	e.checkMissingColumns(t, rep)

	// A header that does not match the specification rejects the file
	// outright; cell-level checks against the wrong columns would only
	// produce noise.
	if rep.HasFileIssues() {
		logger.Debug("Structural issues found, skipping cell-level checks.")
		return
	}

	if opts.ForbidBlankColumns {
		e.checkBlankColumns(t, rep)
	}
	if opts.ForbidBlankRows {
		e.checkBlankRows(t, rep)
	}

	processed := e.processColumns(ctx, t, rep)
	e.runRowValidators(ctx, t, processed, rep)
}

// processColumns runs every column's processor chain and returns the
// processed cell values keyed by canonical column name.
func (e *Engine) processColumns(ctx context.Context, t *table.Table, rep *report.Report) map[string][]string {
	logger := ctxlog.FromContext(ctx)

	columns := e.format.Columns
	var repeat *config.Column
	if e.format.Options.RepeatLastColumn && len(columns) > 0 {
		repeat = columns[len(columns)-1]
		columns = columns[:len(columns)-1]
	}

	processed := make(map[string][]string, len(columns))
	for _, c := range columns {
		logger.Debug("Processing column.", "column", c.Name)
		idx := t.ColumnIndex(c.EffectiveLabel())
		col := &columnView{name: c.EffectiveLabel(), values: t.Column(idx)}
		for _, p := range columnProcessors(c) {
			p.process(col, rep)
		}
		processed[c.Name] = col.values
	}

	if repeat != nil {
		e.processRepeatColumns(ctx, t, repeat, len(columns), rep)
	}
	return processed
}

// processRepeatColumns applies the final column format to every surplus
// column of the input file, starting at position start.
func (e *Engine) processRepeatColumns(ctx context.Context, t *table.Table, repeat *config.Column, start int, rep *report.Report) {
	logger := ctxlog.FromContext(ctx)
	for idx := start; idx < len(t.Header); idx++ {
		logger.Debug("Processing repeated column.", "column", t.Header[idx])
		col := &columnView{name: t.Header[idx], values: t.Column(idx)}
		for _, p := range columnProcessors(repeat) {
			p.process(col, rep)
		}
	}
}

// runRowValidators runs the format's registered row validators over every
// data row, using the processed cell values.
func (e *Engine) runRowValidators(ctx context.Context, t *table.Table, processed map[string][]string, rep *report.Report) {
	if len(e.rowValidators) == 0 {
		return
	}
	logger := ctxlog.FromContext(ctx)

	for i := range t.Rows {
		record := make(map[string]string, len(processed))
		for name, values := range processed {
			record[name] = values[i]
		}
		for _, v := range e.rowValidators {
			logger.Debug("Running row validator.", "validator", v.name, "row", rowIndex(i))
			v.fn(rowIndex(i), record, rep)
		}
	}
}

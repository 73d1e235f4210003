package app

import (
	"context"
	"fmt"

	"github.com/vk/fileformatgo/internal/ctxlog"
	"github.com/vk/fileformatgo/internal/report"
)

// Run validates the configured data file and emits the report: JSON to the
// configured output path, or a status line plus issue lines to outW. The
// returned Report carries the final status; the only errors are an
// unreadable input file or an unwritable output path.
func (a *App) Run(ctx context.Context) (*report.Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	rep, err := a.engine.ProcessFile(ctx, a.config.DataPath)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Validation finished.",
		"status", rep.Status,
		"issues", rep.ErrorCount(),
		"rejected_rows", rep.RejectedRowCount())

	if a.config.OutputPath != "" {
		if err := rep.WriteJSONFile(a.config.OutputPath); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
		a.logger.Debug("Report written.", "path", a.config.OutputPath)
		return rep, nil
	}

	fmt.Fprintf(a.outW, "%s: %s (%d issues)\n", rep.Status, a.config.DataPath, rep.ErrorCount())
	for i := range rep.Issues {
		fmt.Fprintln(a.outW, rep.Issues[i].String())
	}
	return rep, nil
}

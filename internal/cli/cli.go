package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/fileformatgo/internal/app"
)

// Exit codes. Validation rejection is distinct from not being able to run
// at all.
const (
	ExitAccepted = 0
	ExitRejected = 1
	ExitUsage    = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("validate-fileformat", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
validate-fileformat - Validate a tabular data file against a format specification.

Usage:
  validate-fileformat [options] FILE

Arguments:
  FILE
    Path to the delimited data file to validate.

Options:
`)
		flagSet.PrintDefaults()
	}

	specFlag := flagSet.String("spec", "", "Path to the specification document (.hcl, .yml or .yaml).")
	fFlag := flagSet.String("f", "", "Path to the specification document (shorthand).")
	formatsPathFlag := flagSet.String("formats-path", "", "Directory searched for specification documents.")
	formatNameFlag := flagSet.String("format-name", "", "Name of the format to pick from --formats-path.")
	outputFlag := flagSet.String("output", "", "Write the report as a JSON document to this path.")
	oFlag := flagSet.String("o", "", "Write the report as a JSON document to this path (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No data file provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: ExitUsage, Message: "expected exactly one data file argument"}
	}
	dataPath := flagSet.Arg(0)

	specPath := *specFlag
	if specPath == "" {
		specPath = *fFlag
	}
	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = *oFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		DataPath:    dataPath,
		SpecPath:    specPath,
		FormatsPath: *formatsPathFlag,
		FormatName:  *formatNameFlag,
		OutputPath:  outputPath,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}

package app

import "errors"

// Config holds everything an App instance needs to run one validation.
type Config struct {
	// DataPath is the tabular input file to validate.
	DataPath string

	// SpecPath points directly at a specification document.
	SpecPath string

	// FormatsPath and FormatName select a specification by name from a
	// directory of documents, as an alternative to SpecPath.
	FormatsPath string
	FormatName  string

	// OutputPath, when set, receives the report as a JSON document.
	OutputPath string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DataPath == "" {
		return nil, errors.New("an input data file is required")
	}
	if cfg.SpecPath == "" && (cfg.FormatsPath == "" || cfg.FormatName == "") {
		return nil, errors.New("a specification is required: use --spec, or --formats-path with --format-name")
	}
	if cfg.SpecPath != "" && cfg.FormatName != "" {
		return nil, errors.New("--spec and --format-name are mutually exclusive")
	}
	return &cfg, nil
}

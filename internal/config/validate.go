package config

import (
	"fmt"
	"regexp"
	"strings"
)

// ConfigurationError reports a malformed or incomplete specification
// document. It is fatal: nothing is validated against a bad Format.
type ConfigurationError struct {
	Path    string
	Message string
}

// Error implements the error interface for ConfigurationError.
func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return "invalid format specification: " + e.Message
	}
	return fmt.Sprintf("invalid format specification %s: %s", e.Path, e.Message)
}

// NewConfigurationError creates a ConfigurationError for the given document.
func NewConfigurationError(path, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// Validate checks the internal consistency of a loaded Format. Loaders call
// this after translation so every Loader enforces the same rules.
func (f *Format) Validate() error {
	var errs []string

	if f.Name == "" {
		errs = append(errs, "format name is required")
	}
	if len(f.Columns) == 0 {
		errs = append(errs, "at least one column is required")
	}

	seen := make(map[string]struct{})
	for _, c := range f.Columns {
		if c.Name == "" {
			errs = append(errs, "column name is required")
			continue
		}
		if _, ok := seen[c.Name]; ok {
			errs = append(errs, fmt.Sprintf("duplicate column %q", c.Name))
		}
		seen[c.Name] = struct{}{}

		if c.Datatype == "" {
			errs = append(errs, fmt.Sprintf("column %q: datatype is required", c.Name))
		}
		if c.Pattern != "" {
			if _, err := regexp.Compile(c.Pattern); err != nil {
				errs = append(errs, fmt.Sprintf("column %q: invalid regex %q: %v", c.Name, c.Pattern, err))
			}
		}
		if c.Required && c.Default != "" {
			errs = append(errs, fmt.Sprintf("column %q: a required column cannot have a default", c.Name))
		}
	}

	if f.Options.SkipRows < 0 {
		errs = append(errs, "skip_rows cannot be negative")
	}

	if len(errs) > 0 {
		return &ConfigurationError{Message: strings.Join(errs, "; ")}
	}
	return nil
}

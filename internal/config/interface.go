package config

import "context"

// Loader is the interface for a document-format-specific specification
// loader. Implementations parse one specification document into the
// agnostic Format model.
type Loader interface {
	// Load reads the specification document at path and translates it
	// into the agnostic model. Failures are ConfigurationErrors.
	Load(ctx context.Context, path string) (*Format, error)
}

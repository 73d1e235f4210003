// Package config defines the document-format-agnostic model of a file
// format specification, and the Loader interface implemented by the
// HCL and YAML specification loaders.
package config

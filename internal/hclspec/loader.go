// Package hclspec is the HCL implementation of the config.Loader
// interface. A specification document is a single `format` block with
// nested `options` and `column` blocks.
package hclspec

import (
	"context"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/fileformatgo/internal/config"
	"github.com/vk/fileformatgo/internal/ctxlog"
)

// Loader is the HCL-specific implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new HCL specification loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the HCL document at path into the agnostic Format model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Format, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL specification loader started.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, config.NewConfigurationError(path, "%s", diags.Error())
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, config.NewConfigurationError(path, "%s", diags.Error())
	}

	if len(root.Formats) == 0 {
		return nil, config.NewConfigurationError(path, "no format block found")
	}
	if len(root.Formats) > 1 {
		return nil, config.NewConfigurationError(path, "expected exactly one format block, found %d", len(root.Formats))
	}

	format, err := l.translateFormat(path, root.Formats[0])
	if err != nil {
		return nil, err
	}
	if err := format.Validate(); err != nil {
		return nil, config.NewConfigurationError(path, "%s", err.Error())
	}

	logger.Debug("Specification loaded.", "format", format.Name, "columns", len(format.Columns))
	return format, nil
}

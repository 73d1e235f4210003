// Package yamlspec is the YAML implementation of the config.Loader
// interface. The document shape is a top-level mapping with name,
// description, options and a columns list.
package yamlspec

import (
	"context"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/fileformatgo/internal/config"
	"github.com/vk/fileformatgo/internal/ctxlog"
)

// Loader is the YAML-specific implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML specification loader.
func NewLoader() *Loader {
	return &Loader{}
}

// document mirrors the YAML specification document.
type document struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Options     *optionsDoc  `yaml:"options"`
	Columns     []*columnDoc `yaml:"columns"`
}

type optionsDoc struct {
	SkipRows                int      `yaml:"skiprows"`
	IgnoreAdditionalColumns bool     `yaml:"ignore_additional_columns"`
	RepeatLastColumn        bool     `yaml:"repeat_last_column"`
	ForbidBlankRows         bool     `yaml:"forbid_blank_rows"`
	ForbidBlankColumns      bool     `yaml:"forbid_blank_columns"`
	Validators              []string `yaml:"validators"`
}

type columnDoc struct {
	Name          string   `yaml:"name"`
	Label         string   `yaml:"label"`
	Datatype      string   `yaml:"datatype"`
	Required      *bool    `yaml:"required"`
	Default       *string  `yaml:"default"`
	Regex         string   `yaml:"regex"`
	DateFormat    string   `yaml:"dateformat"`
	Unique        bool     `yaml:"unique"`
	Options       []string `yaml:"options"`
	MissingValues []string `yaml:"missing_values"`
}

// Load parses the YAML document at path into the agnostic Format model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Format, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML specification loader started.", "path", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, config.NewConfigurationError(path, "%s", err.Error())
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, config.NewConfigurationError(path, "%s", err.Error())
	}

	format, err := l.translate(path, &doc)
	if err != nil {
		return nil, err
	}
	if err := format.Validate(); err != nil {
		return nil, config.NewConfigurationError(path, "%s", err.Error())
	}

	logger.Debug("Specification loaded.", "format", format.Name, "columns", len(format.Columns))
	return format, nil
}

func (l *Loader) translate(path string, doc *document) (*config.Format, error) {
	f := &config.Format{
		Name:        doc.Name,
		Description: doc.Description,
	}

	if doc.Options != nil {
		f.Options = config.Options{
			SkipRows:                doc.Options.SkipRows,
			IgnoreAdditionalColumns: doc.Options.IgnoreAdditionalColumns,
			RepeatLastColumn:        doc.Options.RepeatLastColumn,
			ForbidBlankRows:         doc.Options.ForbidBlankRows,
			ForbidBlankColumns:      doc.Options.ForbidBlankColumns,
			Validators:              doc.Options.Validators,
		}
	}

	for _, cd := range doc.Columns {
		datatype, ok := config.ParseDatatype(cd.Datatype)
		if !ok {
			return nil, config.NewConfigurationError(path, "column %q: unknown datatype %q", cd.Name, cd.Datatype)
		}

		// A column with a default is optional unless required is set
		// explicitly.
		required := true
		switch {
		case cd.Required != nil:
			required = *cd.Required
		case cd.Default != nil:
			required = false
		}

		defaultValue := ""
		if cd.Default != nil {
			defaultValue = *cd.Default
		}

		f.Columns = append(f.Columns, &config.Column{
			Name:          cd.Name,
			Label:         cd.Label,
			Datatype:      datatype,
			Required:      required,
			Default:       defaultValue,
			Pattern:       cd.Regex,
			DateFormat:    cd.DateFormat,
			Unique:        cd.Unique,
			Options:       cd.Options,
			MissingValues: cd.MissingValues,
		})
	}
	return f, nil
}

package hclspec

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/fileformatgo/internal/config"
)

// translateFormat converts the HCL-specific schema into the agnostic model.
func (l *Loader) translateFormat(path string, b *formatBlock) (*config.Format, error) {
	f := &config.Format{
		Name:        b.Name,
		Description: b.Description,
	}

	if b.Options != nil {
		f.Options = config.Options{
			SkipRows:                b.Options.SkipRows,
			IgnoreAdditionalColumns: b.Options.IgnoreAdditionalColumns,
			RepeatLastColumn:        b.Options.RepeatLastColumn,
			ForbidBlankRows:         b.Options.ForbidBlankRows,
			ForbidBlankColumns:      b.Options.ForbidBlankColumns,
			Validators:              b.Options.Validators,
		}
	}

	for _, cb := range b.Columns {
		column, err := l.translateColumn(path, cb)
		if err != nil {
			return nil, err
		}
		f.Columns = append(f.Columns, column)
	}
	return f, nil
}

func (l *Loader) translateColumn(path string, b *columnBlock) (*config.Column, error) {
	datatype, ok := config.ParseDatatype(b.Datatype)
	if !ok {
		return nil, config.NewConfigurationError(path, "column %q: unknown datatype %q", b.Name, b.Datatype)
	}

	defaultValue, hasDefault, err := l.defaultAsString(b.Default)
	if err != nil {
		return nil, config.NewConfigurationError(path, "column %q: invalid default: %s", b.Name, err.Error())
	}

	// A column with a default is optional unless required is set explicitly.
	required := true
	switch {
	case b.Required != nil:
		required = *b.Required
	case hasDefault:
		required = false
	}

	return &config.Column{
		Name:          b.Name,
		Label:         b.Label,
		Datatype:      datatype,
		Required:      required,
		Default:       defaultValue,
		Pattern:       b.Pattern,
		DateFormat:    b.DateFormat,
		Unique:        b.Unique,
		Options:       b.Options,
		MissingValues: b.MissingValues,
	}, nil
}

// defaultAsString coerces the default attribute, whatever its HCL type, to
// the string form used for cell comparison.
func (l *Loader) defaultAsString(v *cty.Value) (string, bool, error) {
	if v == nil || v.IsNull() {
		return "", false, nil
	}
	converted, err := convert.Convert(*v, cty.String)
	if err != nil {
		return "", false, err
	}
	return converted.AsString(), true, nil
}

package hclspec

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// formatBlock mirrors the `format "name" { ... }` block of a specification
// document. Attribute values that need type coercion (defaults) stay as raw
// expressions until translation.
type formatBlock struct {
	Name        string         `hcl:"format_name,label"`
	Description string         `hcl:"description,optional"`
	Options     *optionsBlock  `hcl:"options,block"`
	Columns     []*columnBlock `hcl:"column,block"`
}

// optionsBlock mirrors the file-level `options` block.
type optionsBlock struct {
	SkipRows                int      `hcl:"skip_rows,optional"`
	IgnoreAdditionalColumns bool     `hcl:"ignore_additional_columns,optional"`
	RepeatLastColumn        bool     `hcl:"repeat_last_column,optional"`
	ForbidBlankRows         bool     `hcl:"forbid_blank_rows,optional"`
	ForbidBlankColumns      bool     `hcl:"forbid_blank_columns,optional"`
	Validators              []string `hcl:"validators,optional"`
}

// columnBlock mirrors a `column "name" { ... }` block.
type columnBlock struct {
	Name          string     `hcl:"column_name,label"`
	Label         string     `hcl:"label,optional"`
	Datatype      string     `hcl:"datatype"`
	Required      *bool      `hcl:"required,optional"`
	Default       *cty.Value `hcl:"default,optional"`
	Pattern       string     `hcl:"pattern,optional"`
	DateFormat    string     `hcl:"dateformat,optional"`
	Unique        bool       `hcl:"unique,optional"`
	Options       []string   `hcl:"options,optional"`
	MissingValues []string   `hcl:"missing_values,optional"`
}

// fileRoot decodes the top level of a specification document. Exactly one
// format block is expected per document.
type fileRoot struct {
	Formats []*formatBlock `hcl:"format,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

package config

// Datatype is the declared type of a column's values.
type Datatype string

const (
	TypeString   Datatype = "string"
	TypeInteger  Datatype = "integer"
	TypeFloat    Datatype = "float"
	TypeDate     Datatype = "date"
	TypeDatetime Datatype = "datetime"
)

// ParseDatatype maps a datatype keyword from a specification document to a
// Datatype. "decimal" and "number" are accepted as aliases of float. The
// second return value is false for unrecognized keywords.
func ParseDatatype(s string) (Datatype, bool) {
	switch s {
	case "string":
		return TypeString, true
	case "integer":
		return TypeInteger, true
	case "float", "decimal", "number":
		return TypeFloat, true
	case "date":
		return TypeDate, true
	case "datetime":
		return TypeDatetime, true
	}
	return "", false
}

// Format is the unified, document-format-agnostic representation of one
// file format specification. It is constructed by a Loader and read-only
// afterwards.
type Format struct {
	Name        string
	Description string
	Columns     []*Column
	Options     Options
}

// Column describes one expected column of the input file.
type Column struct {
	// Name is the canonical column name, unique within a Format.
	Name string

	// Label is the header text expected in the input file. Defaults to Name.
	Label string

	Datatype Datatype

	// Required columns must have a value in every row. A column with a
	// Default and no explicit required flag is optional.
	Required bool

	// Default replaces missing values in optional columns.
	Default string

	// Pattern is a regular expression that string values must match. The
	// match is anchored at the start of the value.
	Pattern string

	// DateFormat uses the document notation (e.g. "DD/MM/YYYY"), not a Go
	// reference layout.
	DateFormat string

	Unique bool

	// Options is the allowed value set; empty means unconstrained.
	Options []string

	// MissingValues lists extra strings treated as missing when applying
	// the default.
	MissingValues []string
}

// Options carries the file-level structural flags of a Format.
type Options struct {
	// SkipRows is the number of leading lines to discard before the header.
	SkipRows int

	// IgnoreAdditionalColumns suppresses the unexpected-columns check.
	IgnoreAdditionalColumns bool

	// RepeatLastColumn applies the last declared column format to every
	// surplus column in the input file.
	RepeatLastColumn bool

	ForbidBlankRows    bool
	ForbidBlankColumns bool

	// Validators names registered row validators to run per data row.
	Validators []string
}

// EffectiveLabel returns the header text expected for the column.
func (c *Column) EffectiveLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return c.Name
}

// ExpectedLabels returns the header labels of all declared columns, in
// declaration order.
func (f *Format) ExpectedLabels() []string {
	labels := make([]string, 0, len(f.Columns))
	for _, c := range f.Columns {
		labels = append(labels, c.EffectiveLabel())
	}
	return labels
}

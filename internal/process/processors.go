package process

import (
	"fmt"
	"regexp"

	"github.com/vk/fileformatgo/internal/config"
	"github.com/vk/fileformatgo/internal/report"
)

// columnView is one column of the input table as seen by the processors:
// the name used in issue locators and the working cell values. Processors
// may rewrite values (defaults, date normalization); later processors see
// the rewritten cells.
type columnView struct {
	name   string
	values []string
}

// rowIndex converts a position in the value slice to the 1-based data row
// index used in locators. The header is row 0.
func rowIndex(i int) int { return i + 1 }

// isMissing reports whether a cell counts as having no value.
func isMissing(v string) bool { return v == "" }

// processor is the uniform contract of all per-column checks: inspect the
// column, append issues, optionally rewrite cells. Processors never fail;
// everything they find becomes an issue.
type processor interface {
	process(col *columnView, rep *report.Report)
}

// columnProcessors assembles the processor chain for one column
// definition. The datatype processor must stay last: every other check
// runs on the raw (or defaulted) string cells.
func columnProcessors(c *config.Column) []processor {
	var chain []processor

	if c.Unique {
		chain = append(chain, &uniquenessProcessor{})
	}
	if c.Datatype == config.TypeString && c.Pattern != "" {
		chain = append(chain, &regexProcessor{pattern: c.Pattern})
	}
	if len(c.Options) > 0 {
		chain = append(chain, &optionsProcessor{options: c.Options})
	}
	if c.Required {
		chain = append(chain, &requiredProcessor{})
	} else {
		chain = append(chain, &defaultsProcessor{
			defaultValue:  c.Default,
			missingValues: c.MissingValues,
		})
	}
	chain = append(chain, &datatypeProcessor{
		datatype:   c.Datatype,
		dateFormat: c.DateFormat,
	})

	return chain
}

// uniquenessProcessor flags the second and later occurrences of any value.
type uniquenessProcessor struct{}

func (p *uniquenessProcessor) process(col *columnView, rep *report.Report) {
	seen := make(map[string]struct{}, len(col.values))
	for i, v := range col.values {
		if _, dup := seen[v]; dup {
			rep.AddRowIssue(
				report.KindDuplicateValue,
				fmt.Sprintf("Found duplicate value: %q", v),
				rowIndex(i), col.name, v)
			continue
		}
		seen[v] = struct{}{}
	}
}

// regexProcessor checks non-missing values against a pattern anchored at
// the start of the value.
type regexProcessor struct {
	pattern string
}

func (p *regexProcessor) process(col *columnView, rep *report.Report) {
	rx := regexp.MustCompile("^(?:" + p.pattern + ")")
	for i, v := range col.values {
		if isMissing(v) {
			continue
		}
		if !rx.MatchString(v) {
			rep.AddRowIssue(
				report.KindInvalidPattern,
				fmt.Sprintf("The value is not matching the pattern %s: %q", p.pattern, v),
				rowIndex(i), col.name, v)
		}
	}
}

// optionsProcessor checks non-missing values against the allowed set.
// Missing values are left to the required/defaults step.
type optionsProcessor struct {
	options []string
}

func (p *optionsProcessor) process(col *columnView, rep *report.Report) {
	allowed := make(map[string]struct{}, len(p.options))
	for _, o := range p.options {
		allowed[o] = struct{}{}
	}
	for i, v := range col.values {
		if isMissing(v) {
			continue
		}
		if _, ok := allowed[v]; !ok {
			rep.AddRowIssue(
				report.KindInvalidOption,
				fmt.Sprintf("The value is not one of the allowed options: %q", v),
				rowIndex(i), col.name, v)
		}
	}
}

// requiredProcessor flags every missing cell. It must run before the
// datatype conversion.
type requiredProcessor struct{}

func (p *requiredProcessor) process(col *columnView, rep *report.Report) {
	for i, v := range col.values {
		if isMissing(v) {
			rep.AddRowIssue(
				report.KindMissingValue,
				fmt.Sprintf("Found missing value: %q", v),
				rowIndex(i), col.name, v)
		}
	}
}

// defaultsProcessor replaces missing cells of an optional column with the
// configured default. It produces no issues.
type defaultsProcessor struct {
	defaultValue  string
	missingValues []string
}

func (p *defaultsProcessor) process(col *columnView, rep *report.Report) {
	missing := map[string]struct{}{"": {}}
	for _, v := range p.missingValues {
		missing[v] = struct{}{}
	}
	for i, v := range col.values {
		if _, ok := missing[v]; ok {
			col.values[i] = p.defaultValue
		}
	}
}

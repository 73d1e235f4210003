package process

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/vk/fileformatgo/internal/config"
	"github.com/vk/fileformatgo/internal/report"
)

// Specification documents use a human notation for date formats
// (DD/MM/YYYY etc.), not Go reference layouts.
var dateTokens = regexp.MustCompile(`HH|:MM|SS|YYYY|YY|MM|DD`)

var dateTokenLayouts = map[string]string{
	":MM":  ":04", // minutes only after a colon, otherwise MM is the month
	"DD":   "02",
	"MM":   "01",
	"YYYY": "2006",
	"YY":   "06",
	"HH":   "15",
	"SS":   "05",
}

// convertDateFormat translates the document notation into a Go time layout.
func convertDateFormat(format string) string {
	return dateTokens.ReplaceAllStringFunc(format, func(tok string) string {
		return dateTokenLayouts[tok]
	})
}

const (
	defaultDateLayout     = "2006-01-02"
	defaultDatetimeLayout = "2006-01-02 15:04:05"
	isoDateLayout         = "2006-01-02"
)

// datatypeProcessor verifies that every non-missing cell parses as the
// declared type. It is always the last processor in a chain: all other
// checks see the cells before conversion. Date cells are normalized to
// ISO form for the row validators that run afterwards.
type datatypeProcessor struct {
	datatype   config.Datatype
	dateFormat string
}

func (p *datatypeProcessor) process(col *columnView, rep *report.Report) {
	check, message := p.checker()
	if check == nil {
		return
	}
	for i, v := range col.values {
		if isMissing(v) {
			continue
		}
		normalized, err := check(v)
		if err != nil {
			rep.AddRowIssue(
				report.KindInvalidValue,
				fmt.Sprintf(message, v),
				rowIndex(i), col.name, v)
			col.values[i] = ""
			continue
		}
		col.values[i] = normalized
	}
}

// checker returns the parse function and issue message template for the
// declared type. A nil function means the type needs no conversion.
func (p *datatypeProcessor) checker() (func(string) (string, error), string) {
	switch p.datatype {
	case config.TypeInteger:
		return func(v string) (string, error) {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				return "", err
			}
			return v, nil
		}, "Invalid integer: %q"

	case config.TypeFloat:
		return func(v string) (string, error) {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				return "", err
			}
			return v, nil
		}, "Invalid number: %q"

	case config.TypeDate:
		layout := defaultDateLayout
		if p.dateFormat != "" {
			layout = convertDateFormat(p.dateFormat)
		}
		return func(v string) (string, error) {
			t, err := time.Parse(layout, v)
			if err != nil {
				return "", err
			}
			return t.Format(isoDateLayout), nil
		}, "Invalid date: %q"

	case config.TypeDatetime:
		layout := defaultDatetimeLayout
		if p.dateFormat != "" {
			layout = convertDateFormat(p.dateFormat)
		}
		return func(v string) (string, error) {
			if _, err := time.Parse(layout, v); err != nil {
				return "", err
			}
			return v, nil
		}, "Invalid timestamp: %q"
	}

	// Strings pass through untouched.
	return nil, ""
}

package process

import (
	"sort"
	"sync"

	"github.com/vk/fileformatgo/internal/report"
)

// RowValidator is a custom per-row check. It receives the 1-based data row
// index and the processed row keyed by canonical column name, and records
// whatever it finds on the report.
type RowValidator func(row int, record map[string]string, rep *report.Report)

var (
	rowValidatorsMu sync.RWMutex
	rowValidators   = make(map[string]RowValidator)
)

// RegisterRowValidator makes a row validator available to format
// specifications under the given name. Registering the same name twice
// panics: that is a programming error, not a runtime condition.
func RegisterRowValidator(name string, fn RowValidator) {
	rowValidatorsMu.Lock()
	defer rowValidatorsMu.Unlock()
	if _, dup := rowValidators[name]; dup {
		panic("process: row validator registered twice: " + name)
	}
	rowValidators[name] = fn
}

// lookupRowValidator returns the registered validator, if any.
func lookupRowValidator(name string) (RowValidator, bool) {
	rowValidatorsMu.RLock()
	defer rowValidatorsMu.RUnlock()
	fn, ok := rowValidators[name]
	return fn, ok
}

// RowValidatorNames returns the sorted names of all registered validators.
func RowValidatorNames() []string {
	rowValidatorsMu.RLock()
	defer rowValidatorsMu.RUnlock()
	names := make([]string, 0, len(rowValidators))
	for name := range rowValidators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

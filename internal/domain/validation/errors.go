package validation

import (
	"sort"
	"strings"
)

// Errors collects validation messages keyed by input field name.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Merge(other Errors) {
	for field, messages := range other {
		for _, msg := range messages {
			e.Add(field, msg)
		}
	}
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

// Err returns nil when no field failed.
func (e Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], ", "))
	}
	return strings.Join(parts, "; ")
}

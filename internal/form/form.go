// Package form maps domain entities to editable form state and back.
//
// Each form loads its fields from an entity (edit) or from declared defaults
// (create), validates declaratively through pkg/validate, and only serializes
// to the wire payload at submit time. List-like fields are edited as ordered
// string sequences via Add/Remove — the serialized encoding never appears in
// editing state. A form that fails validation never produces a payload, so
// nothing invalid reaches the network.
package form

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries field-level messages for a rejected submit.
// It is resolved locally — it never reaches the network.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("form: validation failed for %s", strings.Join(names, ", "))
}

// blocked wraps a non-empty errs map; nil means the form may submit.
func blocked(errs map[string]string) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

// addItem appends a trimmed, non-empty value to an ordered sequence.
func addItem(list []string, v string) []string {
	v = strings.TrimSpace(v)
	if v == "" {
		return list
	}
	return append(list, v)
}

// removeItem deletes index i, preserving order. Out-of-range is a no-op.
func removeItem(list []string, i int) []string {
	if i < 0 || i >= len(list) {
		return list
	}
	return append(list[:i], list[i+1:]...)
}

package pipeline

import "fmt"

// SortFields maps public sort keys to SQL column expressions.
type SortFields map[string]string

// Lookup resolves a public sort key. Keys outside the allow-list are rejected.
func (f SortFields) Lookup(key string) (string, error) {
	column, ok := f[key]
	if !ok {
		return "", fmt.Errorf("sort field %q is not allowed", key)
	}
	return column, nil
}

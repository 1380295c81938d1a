package utils

import (
	"maps"
	"slices"
)

// GetKeys returns the keys of m sorted.
func GetKeys[T any](m map[string]T) []string {
	keys := slices.Collect(maps.Keys(m))
	if keys == nil {
		keys = []string{}
	}
	slices.Sort(keys)
	return keys
}

// File: lixenwraith/deconfig/helper.go
package deconfig

import (
	"fmt"
	"strings"
)

// flattenMap converts a nested map[string]any to a flat map with dot-notation paths.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		if nestedMap, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(nestedMap, newPath) {
				flat[subPath] = subValue
			}
		} else {
			flat[newPath] = value
		}
	}

	return flat
}

// setNestedValue sets a value in a nested map using a dot-notation path.
// It creates intermediate maps if they don't exist.
// If a segment exists but is not a map, it will be overwritten by a new map.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		if nextMap, isMap := current[segment].(map[string]any); isMap {
			current = nextMap
			continue
		}
		newMap := make(map[string]any)
		current[segment] = newMap
		current = newMap
	}

	current[segments[len(segments)-1]] = value
}

// insertNestedValue is setNestedValue without overwriting: it fails when the
// path or one of its prefixes already holds a value of another shape.
func insertNestedValue(nested map[string]any, path string, value any) error {
	segments := strings.Split(path, ".")
	current := nested

	for i, segment := range segments[:len(segments)-1] {
		existing, exists := current[segment]
		if !exists {
			next := make(map[string]any)
			current[segment] = next
			current = next
			continue
		}
		next, isMap := existing.(map[string]any)
		if !isMap {
			return fmt.Errorf("%q is already set, cannot nest %q under it", strings.Join(segments[:i+1], "."), path)
		}
		current = next
	}

	leaf := segments[len(segments)-1]
	if _, exists := current[leaf]; exists {
		return fmt.Errorf("%q is already set by a nested field", path)
	}
	current[leaf] = value
	return nil
}

// lookupPath traverses a nested map along a dot-notation path.
// A key holding the full dotted path is tried first at every level, so flat
// maps and nested tables both work. The bool reports whether the path exists.
func lookupPath(nested map[string]any, path string) (any, bool) {
	if v, ok := nested[path]; ok {
		return v, true
	}

	head, rest, found := strings.Cut(path, ".")
	if !found {
		return nil, false
	}

	switch next := nested[head].(type) {
	case map[string]any:
		return lookupPath(next, rest)
	case map[any]any:
		converted := make(map[string]any, len(next))
		for k, v := range next {
			if ks, ok := k.(string); ok {
				converted[ks] = v
			}
		}
		return lookupPath(converted, rest)
	}
	return nil, false
}

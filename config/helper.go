// File: pymodule/config/helper.go
package config

import (
	"sort"
	"strings"
)

// joinPath appends key to a dot-notation prefix.
func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Get looks up a value by dot-notation path.
func (t Tree) Get(path string) (Value, bool) {
	if path == "" {
		return Value{}, false
	}
	segments := strings.Split(path, ".")
	current := t
	for i, segment := range segments {
		val, exists := current[segment]
		if !exists || val.IsAbsent() {
			return Value{}, false
		}
		if i == len(segments)-1 {
			return val, true
		}
		next, isMap := val.AsMap()
		if !isMap {
			return Value{}, false
		}
		current = next
	}
	return Value{}, false
}

// Set stores a value at a dot-notation path, creating intermediate tables.
// If an intermediate segment holds a scalar, it is replaced by a new table.
func (t Tree) Set(path string, value Value) {
	segments := strings.Split(path, ".")
	current := t

	// Iterate through segments up to the second-to-last one
	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]

		if next, isMap := current[segment].AsMap(); isMap {
			current = next
			continue
		}
		newMap := Tree{}
		current[segment] = Map(newMap)
		current = newMap
	}

	current[segments[len(segments)-1]] = value
}

// Flatten converts the tree into dot-notation leaf paths. Absent entries are
// skipped. An empty table is kept as a leaf so that it stays visible.
func (t Tree) Flatten() map[string]Value {
	flat := make(map[string]Value)
	flattenInto(flat, t, "")
	return flat
}

func flattenInto(flat map[string]Value, tree Tree, prefix string) {
	for key, value := range tree {
		path := joinPath(prefix, key)
		if value.IsAbsent() {
			continue
		}
		if sub, isMap := value.AsMap(); isMap && len(sub) > 0 {
			flattenInto(flat, sub, path)
			continue
		}
		flat[path] = value
	}
}

// LeafPaths returns the flattened paths of t in sorted order.
func (t Tree) LeafPaths() []string {
	flat := t.Flatten()
	paths := make([]string, 0, len(flat))
	for p := range flat {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// isValidKeySegment checks if a single path segment is a valid TOML bare key.
func isValidKeySegment(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		if !(isLetter || isDigit || r == '_' || r == '-') {
			return false
		}
	}
	return true
}

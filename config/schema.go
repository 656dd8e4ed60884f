// FILE: pymodule/config/schema.go
package config

import (
	"fmt"
	"sort"
	"strings"
)

// Range is an inclusive bound for integer keys.
type Range struct {
	Min int64
	Max int64
}

// KeySpec declares one leaf key of the schema.
type KeySpec struct {
	// Kind is the declared scalar kind: KindBool, KindInt or KindString.
	Kind Kind

	// Default is the value placed in the defaults layer. Absent means the key
	// has no default and only appears when a layer provides it.
	Default Value

	// Range bounds integer values. Nil means unbounded.
	Range *Range

	// Allowed restricts the value to an enumerated set. Empty means any value.
	Allowed []Value

	// Env is the environment variable name without prefix. Empty disables
	// environment overrides for the key.
	Env string

	// Flag is the command-line option name. Empty disables CLI overrides.
	Flag string

	// Description is used in diagnostics and usage text.
	Description string
}

// Schema is the closed set of legal configuration keys. It is populated once
// with Register and read-only afterwards.
type Schema struct {
	keys   map[string]KeySpec
	tables map[string]bool   // every proper prefix of a declared key
	flags  map[string]string // flag name -> key path
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{
		keys:   make(map[string]KeySpec),
		tables: make(map[string]bool),
		flags:  make(map[string]string),
	}
}

// Register declares a leaf key. The path is dot-separated and each segment
// must be a valid TOML bare key. A path cannot be both a leaf and a table.
func (s *Schema) Register(path string, spec KeySpec) error {
	if path == "" {
		return fmt.Errorf("registration path cannot be empty")
	}

	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if !isValidKeySegment(segment) {
			return fmt.Errorf("invalid path segment %q in path %q", segment, path)
		}
	}

	switch spec.Kind {
	case KindBool, KindInt, KindString:
	default:
		return fmt.Errorf("path %q: declared kind must be bool, int or string, got %s", path, spec.Kind)
	}

	if _, exists := s.keys[path]; exists {
		return fmt.Errorf("path %q already registered", path)
	}
	if s.tables[path] {
		return fmt.Errorf("path %q is already a table of nested keys", path)
	}
	for i := 1; i < len(segments); i++ {
		prefix := strings.Join(segments[:i], ".")
		if _, isLeaf := s.keys[prefix]; isLeaf {
			return fmt.Errorf("path %q nests under leaf key %q", path, prefix)
		}
	}

	if !spec.Default.IsAbsent() {
		if spec.Default.Kind() != spec.Kind {
			return fmt.Errorf("path %q: default %s does not match declared kind %s", path, spec.Default, spec.Kind)
		}
		if err := checkConstraints(path, spec, spec.Default); err != nil {
			return fmt.Errorf("path %q: invalid default: %w", path, err)
		}
	}

	if spec.Flag != "" {
		if other, taken := s.flags[spec.Flag]; taken {
			return fmt.Errorf("flag %q already bound to %q", spec.Flag, other)
		}
		s.flags[spec.Flag] = path
	}

	for i := 1; i < len(segments); i++ {
		s.tables[strings.Join(segments[:i], ".")] = true
	}
	s.keys[path] = spec
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// statically declared schemas.
func (s *Schema) MustRegister(path string, spec KeySpec) *Schema {
	if err := s.Register(path, spec); err != nil {
		panic(fmt.Sprintf("schema registration failed: %v", err))
	}
	return s
}

// Lookup returns the spec declared for a leaf path.
func (s *Schema) Lookup(path string) (KeySpec, bool) {
	spec, ok := s.keys[path]
	return spec, ok
}

// IsTable reports whether path has declared keys nested under it.
func (s *Schema) IsTable(path string) bool {
	return s.tables[path]
}

// Paths returns every declared leaf path in sorted order.
func (s *Schema) Paths() []string {
	paths := make([]string, 0, len(s.keys))
	for p := range s.keys {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// PathForFlag maps a command-line option name to its key path.
func (s *Schema) PathForFlag(flag string) (string, bool) {
	path, ok := s.flags[flag]
	return path, ok
}

// Defaults builds a fresh tree holding every declared default.
func (s *Schema) Defaults() Tree {
	tree := Tree{}
	for path, spec := range s.keys {
		if !spec.Default.IsAbsent() {
			tree.Set(path, spec.Default)
		}
	}
	return tree
}

// Validate checks tree against the schema and reports every violation in a
// single *ConfigValidationError, ordered by key path. It returns nil when
// every leaf is declared, has the declared kind and satisfies its constraints.
func (s *Schema) Validate(tree Tree) error {
	var violations []Violation
	s.walk("", tree, &violations)
	if len(violations) == 0 {
		return nil
	}
	return newValidationError(violations)
}

func (s *Schema) walk(prefix string, tree Tree, out *[]Violation) {
	for key, val := range tree {
		if val.IsAbsent() {
			continue
		}
		path := joinPath(prefix, key)

		if spec, isLeaf := s.keys[path]; isLeaf {
			if val.Kind() != spec.Kind {
				*out = append(*out, &TypeMismatchError{Path: path, Expected: spec.Kind, Actual: val.Kind()})
				continue
			}
			if err := checkConstraints(path, spec, val); err != nil {
				*out = append(*out, err)
			}
			continue
		}

		if s.tables[path] {
			sub, isMap := val.AsMap()
			if !isMap {
				*out = append(*out, &TypeMismatchError{Path: path, Expected: KindMap, Actual: val.Kind()})
				continue
			}
			s.walk(path, sub, out)
			continue
		}

		*out = append(*out, &UnknownKeyError{Path: path})
	}
}

// checkConstraints applies the range and allowed-set checks to a value that
// already has the declared kind.
func checkConstraints(path string, spec KeySpec, val Value) *RangeError {
	if spec.Range != nil {
		if i, ok := val.AsInt(); ok && (i < spec.Range.Min || i > spec.Range.Max) {
			return &RangeError{Path: path, Value: val, Range: spec.Range}
		}
	}
	if len(spec.Allowed) > 0 {
		for _, a := range spec.Allowed {
			if a.Equal(val) {
				return nil
			}
		}
		return &RangeError{Path: path, Value: val, Allowed: spec.Allowed}
	}
	return nil
}

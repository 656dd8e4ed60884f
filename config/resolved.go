// FILE: pymodule/config/resolved.go
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
)

// ResolvedConfig is the validated result of one resolution. It is never
// modified after creation. Accessors hand out copies, so concurrent reads
// are safe.
type ResolvedConfig struct {
	tree    Tree
	sources map[string]SourceDescriptor
}

func newResolvedConfig(tree Tree, sources map[string]SourceDescriptor) *ResolvedConfig {
	return &ResolvedConfig{tree: tree, sources: sources}
}

// Get retrieves a value by dot-notation path. Tables are returned as copies.
func (c *ResolvedConfig) Get(path string) (Value, bool) {
	val, found := c.tree.Get(path)
	if !found {
		return Value{}, false
	}
	return val.clone(), true
}

// String retrieves a string value. Scalars of other kinds are formatted.
func (c *ResolvedConfig) String(path string) (string, error) {
	val, found := c.Get(path)
	if !found {
		return "", fmt.Errorf("path not found: %s", path)
	}
	switch val.Kind() {
	case KindString:
		s, _ := val.AsString()
		return s, nil
	case KindBool, KindInt:
		return fmt.Sprint(val.Interface()), nil
	}
	return "", fmt.Errorf("cannot convert %s to string for path %s", val.Kind(), path)
}

// Int64 retrieves an integer value.
func (c *ResolvedConfig) Int64(path string) (int64, error) {
	val, found := c.Get(path)
	if !found {
		return 0, fmt.Errorf("path not found: %s", path)
	}
	if i, ok := val.AsInt(); ok {
		return i, nil
	}
	return 0, fmt.Errorf("cannot convert %s to int64 for path %s", val.Kind(), path)
}

// Bool retrieves a boolean value.
func (c *ResolvedConfig) Bool(path string) (bool, error) {
	val, found := c.Get(path)
	if !found {
		return false, fmt.Errorf("path not found: %s", path)
	}
	if b, ok := val.AsBool(); ok {
		return b, nil
	}
	return false, fmt.Errorf("cannot convert %s to bool for path %s", val.Kind(), path)
}

// VersionRequested reports whether resolution stopped at the version flag.
func (c *ResolvedConfig) VersionRequested() bool {
	b, err := c.Bool(VersionKey)
	return err == nil && b
}

// Source reports which layer supplied the value at a leaf path.
func (c *ResolvedConfig) Source(path string) (SourceDescriptor, bool) {
	src, ok := c.sources[path]
	return src, ok
}

// Paths returns every leaf path in sorted order.
func (c *ResolvedConfig) Paths() []string {
	return c.tree.LeafPaths()
}

// Tree returns a deep copy of the resolved tree.
func (c *ResolvedConfig) Tree() Tree {
	return c.tree.Clone()
}

// Native returns the resolved tree as nested map[string]any.
func (c *ResolvedConfig) Native() map[string]any {
	return c.tree.Native()
}

// Equal reports whether two resolutions produced the same tree.
func (c *ResolvedConfig) Equal(other *ResolvedConfig) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.tree.Equal(other.tree)
}

// Debug returns a formatted listing of every value and the layer it came from.
func (c *ResolvedConfig) Debug() string {
	var b strings.Builder
	b.WriteString("Resolved configuration:\n")
	for _, path := range c.Paths() {
		val, _ := c.tree.Get(path)
		src := c.sources[path]
		fmt.Fprintf(&b, "  %s = %s (%s)\n", path, val, src)
	}
	return b.String()
}

// Dump writes the resolved configuration to w in TOML format.
func (c *ResolvedConfig) Dump(w io.Writer) error {
	encoder := toml.NewEncoder(w)
	if err := encoder.Encode(c.tree.Native()); err != nil {
		return fmt.Errorf("failed to marshal config data to TOML: %w", err)
	}
	return nil
}

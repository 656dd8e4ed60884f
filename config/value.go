// FILE: pymodule/config/value.go
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindAbsent marks a key the layer did not provide. It never overrides.
	KindAbsent Kind = iota
	KindBool
	KindInt
	KindString
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindMap:
		return "table"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a configuration value: a scalar, a nested Tree, or absent.
// The zero Value is absent.
type Value struct {
	kind Kind
	b    bool
	i    int64
	s    string
	m    Tree
}

// Tree is one layer of configuration, or the merged result.
type Tree map[string]Value

// Absent returns the "not provided by this layer" marker.
func Absent() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Map wraps a nested tree. A nil tree becomes an empty table.
func Map(t Tree) Value {
	if t == nil {
		t = Tree{}
	}
	return Value{kind: KindMap, m: t}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v carries no value.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

func (v Value) AsBool() (bool, bool)     { return v.b, v.kind == KindBool }
func (v Value) AsInt() (int64, bool)     { return v.i, v.kind == KindInt }
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsMap returns the nested tree. The tree is shared with v, not copied.
func (v Value) AsMap() (Tree, bool) { return v.m, v.kind == KindMap }

// Interface returns the plain Go form: bool, int64, string, map[string]any, or nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindString:
		return v.s
	case KindMap:
		return v.m.Native()
	default:
		return nil
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindAbsent:
		return "<absent>"
	case KindString:
		return strconv.Quote(v.s)
	case KindMap:
		return fmt.Sprintf("%v", v.m.Native())
	default:
		return fmt.Sprint(v.Interface())
	}
}

// Equal reports deep equality of two values.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindString:
		return v.s == o.s
	case KindMap:
		return v.m.Equal(o.m)
	default:
		return true
	}
}

// clone returns v with any nested tree deep-copied.
func (v Value) clone() Value {
	if v.kind == KindMap {
		return Map(v.m.Clone())
	}
	return v
}

// Clone returns a deep copy of t. Absent entries are copied as-is.
func (t Tree) Clone() Tree {
	out := make(Tree, len(t))
	for k, v := range t {
		out[k] = v.clone()
	}
	return out
}

// Equal reports whether both trees hold the same keys and values.
func (t Tree) Equal(o Tree) bool {
	if len(t) != len(o) {
		return false
	}
	for k, v := range t {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Native converts the tree into nested map[string]any, dropping absent entries.
func (t Tree) Native() map[string]any {
	out := make(map[string]any, len(t))
	for k, v := range t {
		if v.IsAbsent() {
			continue
		}
		out[k] = v.Interface()
	}
	return out
}

// Keys returns the tree's own keys in sorted order.
func (t Tree) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FromNative converts a decoded document (TOML, JSON or YAML) into a Tree.
// Integers of any width, strings, booleans and nested string-keyed maps are
// accepted. A nil entry is treated as absent. Anything else is an error
// naming the offending key.
func FromNative(doc map[string]any) (Tree, error) {
	return fromNative("", doc)
}

func fromNative(prefix string, doc map[string]any) (Tree, error) {
	out := make(Tree, len(doc))
	for key, raw := range doc {
		path := joinPath(prefix, key)
		val, err := valueOf(path, raw)
		if err != nil {
			return nil, err
		}
		out[key] = val
	}
	return out, nil
}

func valueOf(path string, raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Absent(), nil
	case Value:
		return v.clone(), nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case json.Number:
		i, err := v.Int64()
		if err != nil {
			return Value{}, fmt.Errorf("key %q: non-integer number %s is not supported", path, v)
		}
		return Int(i), nil
	case map[string]any:
		sub, err := fromNative(path, v)
		if err != nil {
			return Value{}, err
		}
		return Map(sub), nil
	case Tree:
		return Map(v.Clone()), nil
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > uint64(^uint64(0)>>1) {
			return Value{}, fmt.Errorf("key %q: unsigned integer %d overflows int64", path, u)
		}
		return Int(int64(u)), nil
	}
	return Value{}, fmt.Errorf("key %q: unsupported value type %T", path, raw)
}

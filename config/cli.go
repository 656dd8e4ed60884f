// FILE: pymodule/config/cli.go
package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CLIOptions is the parsed command line: option name to value. Options the
// user did not supply are simply missing (or Absent). They are never false or zero.
// String values are coerced to the declared kind of the bound key.
type CLIOptions map[string]Value

// LoadCLI builds the command-line layer from already parsed options.
// Unknown option names are reported as a *ConfigValidationError, and
// unconvertible values as *CoercionError.
func LoadCLI(schema *Schema, opts CLIOptions) (Tree, error) {
	tree := Tree{}
	var errs []error
	var unknown []Violation

	names := make([]string, 0, len(opts))
	for name := range opts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		val := opts[name]
		if val.IsAbsent() {
			continue
		}

		path, bound := schema.PathForFlag(name)
		if !bound {
			unknown = append(unknown, &UnknownKeyError{Path: name})
			continue
		}
		spec, _ := schema.Lookup(path)

		if raw, isString := val.AsString(); isString && spec.Kind != KindString {
			coerced, err := coerce(raw, spec.Kind)
			if err != nil {
				errs = append(errs, &CoercionError{
					Key:    path,
					Source: SourceDescriptor{Source: SourceCLI, Origin: "--" + name},
					Input:  raw,
					Want:   spec.Kind,
					Err:    err,
				})
				continue
			}
			val = coerced
		}
		tree.Set(path, val.clone())
	}

	if len(unknown) > 0 {
		errs = append(errs, newValidationError(unknown))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return tree, nil
}

// coerce converts a raw string into a value of the given kind.
func coerce(raw string, kind Kind) (Value, error) {
	switch kind {
	case KindString:
		return String(raw), nil
	case KindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return Value{}, err
		}
		return Bool(b), nil
	case KindInt:
		i, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Value{}, err
		}
		return Int(i), nil
	default:
		return Value{}, fmt.Errorf("no string conversion to %s", kind)
	}
}

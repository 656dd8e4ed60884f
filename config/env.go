// FILE: pymodule/config/env.go
package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v11"
)

// DefaultEnvPrefix is prepended to every declared environment variable name.
const DefaultEnvPrefix = "PYMODULE_"

// EnvSnapshot is a frozen copy of the process environment.
type EnvSnapshot map[string]string

// SnapshotEnv captures the current process environment.
func SnapshotEnv() EnvSnapshot {
	return env.ToMap(os.Environ())
}

// Lookup reports the value of a variable and whether it is set.
func (e EnvSnapshot) Lookup(name string) (string, bool) {
	v, ok := e[name]
	return v, ok
}

// EnvName returns the full variable name for a key, or "" when the key has
// no environment binding.
func EnvName(prefix string, spec KeySpec) string {
	if spec.Env == "" {
		return ""
	}
	return prefix + spec.Env
}

// LoadEnv builds the environment layer. Only keys whose variable is set
// appear in the result. Each value is coerced to the key's declared kind, and
// every failure is returned as a *CoercionError joined into one error.
func LoadEnv(schema *Schema, prefix string, snapshot EnvSnapshot) (Tree, error) {
	tree := Tree{}
	var errs []error

	for _, path := range schema.Paths() {
		spec, _ := schema.Lookup(path)
		name := EnvName(prefix, spec)
		if name == "" {
			continue
		}

		raw, set := snapshot.Lookup(name)
		if !set {
			continue
		}

		val, err := coerce(raw, spec.Kind)
		if err != nil {
			errs = append(errs, &CoercionError{
				Key:    path,
				Source: SourceDescriptor{Source: SourceEnv, Origin: name},
				Input:  raw,
				Want:   spec.Kind,
				Err:    err,
			})
			continue
		}
		tree.Set(path, val)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return tree, nil
}

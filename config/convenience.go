// File: pymodule/config/convenience.go
package config

import (
	"fmt"
)

// Quick resolves the application configuration with the default schema,
// the PYMODULE_ prefix and the current process environment.
func Quick(file FileDescriptor, opts CLIOptions) (*ResolvedConfig, error) {
	r, err := NewBuilder().Build()
	if err != nil {
		return nil, err
	}
	return r.Resolve(file, SnapshotEnv(), opts)
}

// MustQuick is like Quick but panics on error
func MustQuick(file FileDescriptor, opts CLIOptions) *ResolvedConfig {
	cfg, err := Quick(file, opts)
	if err != nil {
		panic(fmt.Sprintf("config resolution failed: %v", err))
	}
	return cfg
}

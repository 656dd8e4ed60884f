// File: pymodule/config/builder.go
package config

import (
	"fmt"

	"github.com/lixenwraith/pymodule/logger"
)

// Builder provides a fluent interface for building a Resolver
type Builder struct {
	schema     *Schema
	envPrefix  string
	versionKey string
	log        *logger.Logger
	err        error
}

// NewBuilder creates a builder preset with the application schema, the
// PYMODULE_ environment prefix and a discarding logger.
func NewBuilder() *Builder {
	return &Builder{
		envPrefix:  DefaultEnvPrefix,
		versionKey: VersionKey,
		log:        logger.Nop(),
	}
}

// WithSchema replaces the application schema
func (b *Builder) WithSchema(schema *Schema) *Builder {
	if schema == nil {
		b.err = fmt.Errorf("schema cannot be nil")
		return b
	}
	b.schema = schema
	return b
}

// WithEnvPrefix sets the environment variable prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.envPrefix = prefix
	return b
}

// WithVersionKey sets the boolean key whose CLI option short-circuits
// resolution. An empty key disables the short-circuit.
func (b *Builder) WithVersionKey(path string) *Builder {
	b.versionKey = path
	return b
}

// WithLogger sets the logger receiving per-stage diagnostics
func (b *Builder) WithLogger(l *logger.Logger) *Builder {
	if l != nil {
		b.log = l
	}
	return b
}

// Build creates the Resolver with all specified options
func (b *Builder) Build() (*Resolver, error) {
	if b.err != nil {
		return nil, b.err
	}

	schema := b.schema
	if schema == nil {
		schema = DefaultSchema()
	}

	if b.versionKey != "" {
		spec, ok := schema.Lookup(b.versionKey)
		if !ok {
			return nil, fmt.Errorf("version key %q is not declared in the schema", b.versionKey)
		}
		if spec.Kind != KindBool {
			return nil, fmt.Errorf("version key %q must be a bool, declared as %s", b.versionKey, spec.Kind)
		}
	}

	defaults := schema.Defaults()
	if err := schema.Validate(defaults); err != nil {
		return nil, fmt.Errorf("schema defaults are invalid: %w", err)
	}

	return &Resolver{
		schema:     schema,
		defaults:   defaults,
		envPrefix:  b.envPrefix,
		versionKey: b.versionKey,
		log:        b.log,
	}, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Resolver {
	r, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("resolver build failed: %v", err))
	}
	return r
}

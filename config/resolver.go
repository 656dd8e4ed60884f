// FILE: pymodule/config/resolver.go
package config

import (
	"github.com/lixenwraith/pymodule/logger"
)

// Resolver runs the fixed resolution pipeline
//
//	defaults -> +file -> +environment -> +CLI -> validate
//
// against one schema. A Resolver holds no per-resolution state and can be
// reused. Each call starts from a fresh copy of the defaults.
type Resolver struct {
	schema     *Schema
	defaults   Tree
	envPrefix  string
	versionKey string
	log        *logger.Logger
}

// Schema returns the schema the resolver validates against.
func (r *Resolver) Schema() *Schema { return r.schema }

// EnvPrefix returns the prefix applied to declared environment variable names.
func (r *Resolver) EnvPrefix() string { return r.envPrefix }

// Resolve produces the validated configuration, or the first stage error.
//
// A requested version (the CLI option bound to the version key set to true)
// short-circuits everything: no file or environment is read and the result
// carries only that flag. Otherwise a file error aborts before the
// environment is read, a coercion error aborts before validation, and a
// layer that switches a key between table and scalar, or a failed final
// validation, returns *ConfigValidationError. In every failure case
// no configuration is returned.
func (r *Resolver) Resolve(file FileDescriptor, environ EnvSnapshot, opts CLIOptions) (*ResolvedConfig, error) {
	if r.versionRequested(opts) {
		tree := Tree{}
		tree.Set(r.versionKey, Bool(true))
		r.log.Debug().Str("key", r.versionKey).Msg("version requested, skipping file and environment")
		return newResolvedConfig(tree, map[string]SourceDescriptor{
			r.versionKey: {Source: SourceCLI, Origin: r.flagFor(r.versionKey)},
		}), nil
	}

	sources := make(map[string]SourceDescriptor)
	acc := r.defaults.Clone()
	record(sources, acc, func(string) SourceDescriptor { return SourceDescriptor{Source: SourceDefault} })

	// File
	fileTree, err := LoadFile(file)
	if err != nil {
		r.log.Debug().Err(err).Str("file", file.String()).Msg("file layer failed")
		return nil, err
	}
	if err := r.checkShape(acc, fileTree, "file"); err != nil {
		return nil, err
	}
	acc = Merge(acc, fileTree)
	record(sources, fileTree, func(string) SourceDescriptor {
		return SourceDescriptor{Source: SourceFile, Origin: file.Path}
	})
	r.log.Debug().Str("file", file.String()).Int("keys", len(fileTree.Flatten())).Msg("file layer merged")

	// Environment
	envTree, err := LoadEnv(r.schema, r.envPrefix, environ)
	if err != nil {
		r.log.Debug().Err(err).Msg("environment layer failed")
		return nil, err
	}
	if err := r.checkShape(acc, envTree, "environment"); err != nil {
		return nil, err
	}
	acc = Merge(acc, envTree)
	record(sources, envTree, func(path string) SourceDescriptor {
		spec, _ := r.schema.Lookup(path)
		return SourceDescriptor{Source: SourceEnv, Origin: EnvName(r.envPrefix, spec)}
	})
	r.log.Debug().Int("keys", len(envTree.Flatten())).Msg("environment layer merged")

	// Command line
	cliTree, err := LoadCLI(r.schema, opts)
	if err != nil {
		r.log.Debug().Err(err).Msg("command-line layer failed")
		return nil, err
	}
	if err := r.checkShape(acc, cliTree, "command-line"); err != nil {
		return nil, err
	}
	acc = Merge(acc, cliTree)
	record(sources, cliTree, func(path string) SourceDescriptor {
		return SourceDescriptor{Source: SourceCLI, Origin: r.flagFor(path)}
	})
	r.log.Debug().Int("keys", len(cliTree.Flatten())).Msg("command-line layer merged")

	if err := r.schema.Validate(acc); err != nil {
		r.log.Debug().Err(err).Msg("validation failed")
		return nil, err
	}

	// Drop provenance for leaves replaced by a later table or scalar.
	for path := range sources {
		if _, ok := acc.Get(path); !ok {
			delete(sources, path)
		}
	}

	r.log.Debug().Int("keys", len(sources)).Msg("configuration resolved")
	return newResolvedConfig(acc, sources), nil
}

// checkShape rejects a layer that would turn a table into a scalar or the
// reverse. The merged tree could otherwise hide the switch and drop defaults.
func (r *Resolver) checkShape(acc, layer Tree, stage string) error {
	conflicts := ShapeConflicts(acc, layer)
	if len(conflicts) == 0 {
		return nil
	}
	err := newValidationError(conflicts)
	r.log.Debug().Err(err).Str("layer", stage).Msg("layer changes the shape of a key")
	return err
}

func (r *Resolver) versionRequested(opts CLIOptions) bool {
	flag := r.flagFor(r.versionKey)
	if flag == "" {
		return false
	}
	b, ok := opts[flag].AsBool()
	return ok && b
}

// flagFor returns the option name bound to path, or "".
func (r *Resolver) flagFor(path string) string {
	spec, ok := r.schema.Lookup(path)
	if !ok || spec.Flag == "" {
		return ""
	}
	return spec.Flag
}

// record notes the layer for every leaf the layer provides.
func record(sources map[string]SourceDescriptor, layer Tree, describe func(path string) SourceDescriptor) {
	for path := range layer.Flatten() {
		sources[path] = describe(path)
	}
}

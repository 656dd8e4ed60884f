// File: pymodule/config/doc.go

// Package config resolves the application configuration from four layers:
// schema defaults, a TOML (or JSON/YAML) file, environment variables, and
// command-line options, with later layers taking precedence.
//
// Values are a tagged variant (Value) of bool, int, string or nested Tree,
// plus an explicit Absent marker. Layers are combined with Merge, which
// merges tables key by key, replaces scalars wholesale and never lets an
// absent value override an earlier one.
//
// Quick Start:
//
//	r, err := config.NewBuilder().
//	    WithEnvPrefix("PYMODULE_").
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg, err := r.Resolve(config.FileAt("config.toml"), config.SnapshotEnv(), config.CLIOptions{
//	    "param2": config.String("5"),
//	})
//	if err != nil {
//	    log.Fatal(err) // *NotFoundError, *ParseError, *CoercionError or *ConfigValidationError
//	}
//
//	p2, _ := cfg.Int64("parameters.param2")
//
// Precedence (highest to lowest):
//  1. Command-line options (--param2 5)
//  2. Environment variables (PYMODULE_PARAM2=5)
//  3. Configuration file (config.toml)
//  4. Schema defaults
//
// The schema is closed. Any key it does not declare fails validation, and
// validation reports every violation at once in a *ConfigValidationError.
//
// A ResolvedConfig is immutable. Resolution itself is synchronous and is
// meant to run once, before the rest of the application starts.
package config

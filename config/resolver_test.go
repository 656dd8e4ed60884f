// FILE: pymodule/config/resolver_test.go
package config

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pymodule/logger"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewBuilder().Build()
	require.NoError(t, err)
	return r
}

// TestResolve tests the layered resolution pipeline
func TestResolve(t *testing.T) {
	tmpDir := t.TempDir()
	r := newTestResolver(t)

	t.Run("DefaultsOnly", func(t *testing.T) {
		cfg, err := r.Resolve(NoFile(), EnvSnapshot{}, nil)
		require.NoError(t, err)

		assert.True(t, r.Schema().Defaults().Equal(cfg.Tree()))
		assert.False(t, cfg.VersionRequested())

		src, ok := cfg.Source("parameters.param1")
		require.True(t, ok)
		assert.Equal(t, SourceDefault, src.Source)
	})

	t.Run("AbsentCLIValuesAreTransparent", func(t *testing.T) {
		cfg, err := r.Resolve(NoFile(), EnvSnapshot{}, CLIOptions{
			"param1": Absent(),
			"param2": String("5"),
		})
		require.NoError(t, err)

		p1, _ := cfg.Int64("parameters.param1")
		p2, _ := cfg.Int64("parameters.param2")
		assert.Equal(t, int64(1), p1)
		assert.Equal(t, int64(5), p2)
	})

	t.Run("Precedence", func(t *testing.T) {
		path := writeFile(t, tmpDir, "precedence.toml", `
[parameters]
param1 = 10
param2 = 20

[logging]
verbose = 2
`)
		environ := EnvSnapshot{
			"PYMODULE_PARAM1":  "100",
			"PYMODULE_PARAM2":  "200",
			"PYMODULE_VERBOSE": "3",
		}
		opts := CLIOptions{"param1": String("1000")}

		cfg, err := r.Resolve(FileAt(path), environ, opts)
		require.NoError(t, err)

		p1, _ := cfg.Int64("parameters.param1")
		p2, _ := cfg.Int64("parameters.param2")
		v, _ := cfg.Int64("logging.verbose")
		assert.Equal(t, int64(1000), p1, "cli over env")
		assert.Equal(t, int64(200), p2, "env over file")
		assert.Equal(t, int64(3), v, "env over file")

		name, _ := cfg.String("template.template_name")
		assert.Equal(t, "pymodule", name, "defaults fill the rest")

		src, _ := cfg.Source("parameters.param1")
		assert.Equal(t, SourceDescriptor{Source: SourceCLI, Origin: "param1"}, src)
		src, _ = cfg.Source("parameters.param2")
		assert.Equal(t, SourceDescriptor{Source: SourceEnv, Origin: "PYMODULE_PARAM2"}, src)
		src, _ = cfg.Source("template.template_name")
		assert.Equal(t, SourceDefault, src.Source)
	})

	t.Run("FileOverDefaults", func(t *testing.T) {
		path := writeFile(t, tmpDir, "file.toml", "[logging]\nlog_prefix = false\n")

		cfg, err := r.Resolve(FileAt(path), EnvSnapshot{}, nil)
		require.NoError(t, err)

		prefix, _ := cfg.Bool("logging.log_prefix")
		assert.False(t, prefix)

		src, _ := cfg.Source("logging.log_prefix")
		assert.Equal(t, SourceDescriptor{Source: SourceFile, Origin: path}, src)
	})

	t.Run("NoFileBypassesDefaultPath", func(t *testing.T) {
		t.Chdir(t.TempDir())
		writeFile(t, ".", DefaultConfigFile, "[parameters]\nparam1 = 77\n")

		cfg, err := r.Resolve(NoFile(), EnvSnapshot{}, nil)
		require.NoError(t, err)
		p1, _ := cfg.Int64("parameters.param1")
		assert.Equal(t, int64(1), p1)

		cfg, err = r.Resolve(FileAt(DefaultConfigFile), EnvSnapshot{}, nil)
		require.NoError(t, err)
		p1, _ = cfg.Int64("parameters.param1")
		assert.Equal(t, int64(77), p1)
	})

	t.Run("MissingFileStopsBeforeEnvironment", func(t *testing.T) {
		missing := filepath.Join(tmpDir, "absent.toml")

		// A bad variable would fail coercion if the environment were read
		cfg, err := r.Resolve(FileAt(missing), EnvSnapshot{"PYMODULE_PARAM1": "bad"}, nil)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, ErrConfigNotFound)
		assert.NotErrorIs(t, err, ErrCoercion)
	})

	t.Run("MalformedFile", func(t *testing.T) {
		path := writeFile(t, tmpDir, "malformed.toml", "[parameters\nparam1 = 1\n")

		cfg, err := r.Resolve(FileAt(path), EnvSnapshot{}, nil)
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("UnknownKeyInFile", func(t *testing.T) {
		path := writeFile(t, tmpDir, "unknown.toml", "[logging]\nunknown_flag = true\n")

		_, err := r.Resolve(FileAt(path), EnvSnapshot{}, nil)
		require.Error(t, err)

		var verr *ConfigValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"logging.unknown_flag"}, verr.Paths())
	})

	t.Run("TypeMismatchInFile", func(t *testing.T) {
		path := writeFile(t, tmpDir, "mismatch.toml", "[parameters]\nparam1 = \"one\"\n")

		_, err := r.Resolve(FileAt(path), EnvSnapshot{}, nil)

		var mismatch *TypeMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, "parameters.param1", mismatch.Path)
	})

	t.Run("ScalarReplacingTable", func(t *testing.T) {
		path := writeFile(t, tmpDir, "flat.toml", "parameters = 5\n")

		cfg, err := r.Resolve(FileAt(path), EnvSnapshot{}, CLIOptions{"param1": String("3")})
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, ErrValidation)

		var mismatch *TypeMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, "parameters", mismatch.Path)
		assert.Equal(t, KindMap, mismatch.Expected)
		assert.Equal(t, KindInt, mismatch.Actual)
	})

	t.Run("TableReplacingScalar", func(t *testing.T) {
		path := writeFile(t, tmpDir, "nested.toml", "[parameters.param1]\nvalue = 3\n")

		_, err := r.Resolve(FileAt(path), EnvSnapshot{}, nil)

		var verr *ConfigValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"parameters.param1"}, verr.Paths())
	})

	t.Run("EnvironmentCoercionFailure", func(t *testing.T) {
		_, err := r.Resolve(NoFile(), EnvSnapshot{"PYMODULE_PARAM2": "two"}, nil)
		assert.ErrorIs(t, err, ErrCoercion)
	})

	t.Run("VerboseOutOfRange", func(t *testing.T) {
		_, err := r.Resolve(NoFile(), EnvSnapshot{}, CLIOptions{"verbose": String("7")})
		require.Error(t, err)

		var rerr *RangeError
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, "logging.verbose", rerr.Path)
		assert.Equal(t, Int(7), rerr.Value)
	})

	t.Run("UnknownCLIOption", func(t *testing.T) {
		_, err := r.Resolve(NoFile(), EnvSnapshot{}, CLIOptions{"turbo": Bool(true)})

		var unknown *UnknownKeyError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "turbo", unknown.Path)
	})

	t.Run("VersionShortCircuit", func(t *testing.T) {
		path := writeFile(t, tmpDir, "broken.toml", "this is not toml at all [[[")

		cfg, err := r.Resolve(FileAt(path), EnvSnapshot{"PYMODULE_PARAM1": "bad"}, CLIOptions{
			"v":      Bool(true),
			"param1": String("also bad"),
		})
		require.NoError(t, err)
		assert.True(t, cfg.VersionRequested())
		assert.Equal(t, []string{VersionKey}, cfg.Paths())

		src, _ := cfg.Source(VersionKey)
		assert.Equal(t, SourceDescriptor{Source: SourceCLI, Origin: "v"}, src)
	})

	t.Run("VersionFalseResolvesNormally", func(t *testing.T) {
		cfg, err := r.Resolve(NoFile(), EnvSnapshot{}, CLIOptions{"v": Bool(false)})
		require.NoError(t, err)
		assert.False(t, cfg.VersionRequested())
		assert.Len(t, cfg.Paths(), len(r.Schema().Paths()))
	})

	t.Run("Idempotent", func(t *testing.T) {
		path := writeFile(t, tmpDir, "idem.toml", "[parameters]\nparam2 = 9\n")
		environ := EnvSnapshot{"PYMODULE_PARAM1": "3"}
		opts := CLIOptions{"log-prefix": Bool(false)}

		first, err := r.Resolve(FileAt(path), environ, opts)
		require.NoError(t, err)
		second, err := r.Resolve(FileAt(path), environ, opts)
		require.NoError(t, err)

		assert.True(t, first.Equal(second))
		assert.True(t, r.Schema().Defaults().Equal(r.defaults), "defaults untouched")
	})

	t.Run("ResultIsIsolated", func(t *testing.T) {
		cfg, err := r.Resolve(NoFile(), EnvSnapshot{}, nil)
		require.NoError(t, err)

		tree := cfg.Tree()
		tree.Set("parameters.param1", Int(42))

		p1, _ := cfg.Int64("parameters.param1")
		assert.Equal(t, int64(1), p1)
	})
}

func TestResolveLogsStages(t *testing.T) {
	sink := logger.NewStringSink()
	log := logger.New(io.Discard, logger.Options{Verbose: 5, Sink: sink})

	r, err := NewBuilder().WithLogger(log).Build()
	require.NoError(t, err)

	_, err = r.Resolve(NoFile(), EnvSnapshot{}, nil)
	require.NoError(t, err)

	logs := sink.Logs()
	assert.Contains(t, logs, "file layer merged")
	assert.Contains(t, logs, "environment layer merged")
	assert.Contains(t, logs, "configuration resolved")
}

// TestBuilder tests resolver construction
func TestBuilder(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		r := NewBuilder().MustBuild()
		assert.Equal(t, DefaultEnvPrefix, r.EnvPrefix())
		assert.NotNil(t, r.Schema())
	})

	t.Run("NilSchema", func(t *testing.T) {
		_, err := NewBuilder().WithSchema(nil).Build()
		assert.Error(t, err)
	})

	t.Run("UndeclaredVersionKey", func(t *testing.T) {
		_, err := NewBuilder().WithVersionKey("logging.nope").Build()
		assert.Error(t, err)
	})

	t.Run("VersionKeyMustBeBool", func(t *testing.T) {
		_, err := NewBuilder().WithVersionKey("logging.verbose").Build()
		assert.Error(t, err)
		assert.Panics(t, func() {
			NewBuilder().WithVersionKey("logging.verbose").MustBuild()
		})
	})

	t.Run("CustomSchemaAndPrefix", func(t *testing.T) {
		schema := NewSchema().
			MustRegister("server.port", KeySpec{Kind: KindInt, Default: Int(8080), Env: "PORT", Flag: "port"}).
			MustRegister("server.debug", KeySpec{Kind: KindBool, Default: Bool(false), Flag: "debug"})

		r, err := NewBuilder().
			WithSchema(schema).
			WithEnvPrefix("SRV_").
			WithVersionKey("").
			Build()
		require.NoError(t, err)

		cfg, err := r.Resolve(NoFile(), EnvSnapshot{"SRV_PORT": "9090"}, CLIOptions{"debug": Bool(true)})
		require.NoError(t, err)

		port, _ := cfg.Int64("server.port")
		debug, _ := cfg.Bool("server.debug")
		assert.Equal(t, int64(9090), port)
		assert.True(t, debug)
	})
}

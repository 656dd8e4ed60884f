// Command pymodule is the application skeleton entry point: it resolves the
// configuration, then either prints the version or runs the application.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/pymodule/app"
	"github.com/lixenwraith/pymodule/cli"
	"github.com/lixenwraith/pymodule/config"
	"github.com/lixenwraith/pymodule/logger"
	"github.com/lixenwraith/pymodule/version"
)

// benchmarkRounds is the benchmark size used by run.
var benchmarkRounds = app.DefaultBenchmarkRounds

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], config.SnapshotEnv(), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run returns the process exit status: 0 on success, help or version,
// 1 on a resolution or application error, 2 on a usage error.
func run(ctx context.Context, args []string, environ config.EnvSnapshot, stdout, stderr io.Writer) int {
	inv, err := cli.Parse(version.Name, args, stderr)
	if err != nil {
		if cli.IsHelp(err) {
			return 0
		}
		return 2
	}

	// Used until the configured verbosity is known
	boot := logger.New(stderr, logger.Options{Verbose: 4, Prefix: true, Component: version.Name})

	resolver, err := config.NewBuilder().
		WithEnvPrefix(config.DefaultEnvPrefix).
		WithLogger(boot.Child("config")).
		Build()
	if err != nil {
		boot.Error().Err(err).Msg("Failed to build configuration resolver")
		return 1
	}

	cfg, err := resolver.Resolve(inv.File, environ, inv.Options)
	if err != nil {
		boot.Error().Err(err).Str("file", inv.File.String()).Msg("Error with loading configuration. Giving up.")
		return 1
	}

	if cfg.VersionRequested() {
		boot.Debug().Msg("Version information requested")
		fmt.Fprintln(stdout, version.String())
		return 0
	}

	appCfg, err := cfg.AppConfig()
	if err != nil {
		boot.Error().Err(err).Msg("Failed to decode configuration")
		return 1
	}

	opts := appCfg.Logging.LoggerOptions(version.Name)
	log := logger.New(stderr, opts)
	log.Debug().Msg(cfg.Debug())

	runner := app.NewRunner(cfg, log)
	runner.Out = stdout
	runner.Rounds = benchmarkRounds
	if err := runner.Run(ctx); err != nil {
		return 1
	}

	if opts.Sink != nil {
		log.Debug().Int("lines", len(opts.Sink.Lines())).Msg("Captured log lines")
	}
	return 0
}

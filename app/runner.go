// Package app runs the application once the configuration is resolved.
package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jonboulle/clockwork"

	"github.com/lixenwraith/pymodule/config"
	"github.com/lixenwraith/pymodule/core"
	"github.com/lixenwraith/pymodule/logger"
	"github.com/lixenwraith/pymodule/version"
)

// DefaultBenchmarkRounds is the number of Fibonacci rounds timed per run.
const DefaultBenchmarkRounds = 500000

// Runner executes the application body with a resolved configuration.
type Runner struct {
	Config *config.ResolvedConfig
	Log    *logger.Logger
	Out    io.Writer
	Clock  clockwork.Clock
	Rounds int
}

// NewRunner creates a runner writing results to os.Stdout on the real clock.
func NewRunner(cfg *config.ResolvedConfig, log *logger.Logger) *Runner {
	return &Runner{
		Config: cfg,
		Log:    log,
		Out:    os.Stdout,
		Clock:  clockwork.NewRealClock(),
		Rounds: DefaultBenchmarkRounds,
	}
}

// Run logs the configuration, calls the placeholder modules and runs the
// Fibonacci benchmark. Errors are logged and returned, never panicked.
func (r *Runner) Run(ctx context.Context) error {
	log := r.Log
	log.Info().
		Str("version", version.Version).
		Str("go", version.GoVersion()).
		Msg("Running app")
	defer log.Info().Msg("Exiting app")

	appCfg, err := r.Config.AppConfig()
	if err != nil {
		log.Error().Err(err).Msg("Error in application run")
		return err
	}

	var dump bytes.Buffer
	if err := r.Config.Dump(&dump); err != nil {
		log.Error().Err(err).Msg("Error in application run")
		return err
	}
	log.Debug().Str("config", dump.String()).Msg("Resolved configuration")
	log.Info().
		Int64("param1", appCfg.Parameters.Param1).
		Int64("param2", appCfg.Parameters.Param2).
		Str("input_file", appCfg.Positionals.InputFile).
		Str("output_file", appCfg.Positionals.OutputFile).
		Msg("Parameters")

	core.HelloA(log)
	core.GoodbyeA(log)
	core.HelloB(log)
	core.GoodbyeB(log)
	core.HelloUtils(log)

	log.Info().Msg("Benchmarks:")
	res, err := core.Benchmark(ctx, r.Rounds, r.Clock)
	if err != nil {
		log.Error().Err(err).Int("rounds", res.Rounds).Msg("Benchmark interrupted")
		return err
	}
	fmt.Fprintf(r.Out, "Go function executed %d rounds in %s (%s per round)\n", res.Rounds, res.Elapsed, res.PerRound())
	return nil
}

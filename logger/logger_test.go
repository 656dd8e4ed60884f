package logger

import (
	"bytes"
	"io"
	"regexp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		verbose int
		want    zerolog.Level
	}{
		{-1, zerolog.Disabled},
		{0, zerolog.Disabled},
		{1, zerolog.FatalLevel},
		{2, zerolog.ErrorLevel},
		{3, zerolog.WarnLevel},
		{4, zerolog.InfoLevel},
		{5, zerolog.DebugLevel},
		{6, zerolog.TraceLevel},
		{9, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Level(tt.verbose), "verbose=%d", tt.verbose)
	}
}

func TestNew(t *testing.T) {
	t.Run("PrefixedLines", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf, Options{Verbose: 4, Prefix: true, Component: "pymodule"})

		log.Info().Msg("Running app")

		line := buf.String()
		assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} INF`), line)
		assert.Contains(t, line, "Running app")
		assert.Contains(t, line, "component=pymodule")
	})

	t.Run("BareLines", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf, Options{Verbose: 4})

		log.Info().Msg("Running app")

		assert.Equal(t, "Running app", strings.TrimSpace(buf.String()))
	})

	t.Run("LevelFiltering", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf, Options{Verbose: 3})

		log.Info().Msg("hidden")
		log.Warn().Msg("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("Silent", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf, Options{Verbose: 0, Prefix: true})

		log.Error().Msg("nothing")
		assert.Empty(t, buf.String())
	})

	t.Run("LevelIsPerLogger", func(t *testing.T) {
		var quiet, loud bytes.Buffer
		q := New(&quiet, Options{Verbose: 2})
		l := New(&loud, Options{Verbose: 6})

		q.Info().Msg("info line")
		l.Trace().Msg("trace line")
		assert.Empty(t, quiet.String())
		assert.Contains(t, loud.String(), "trace line")
	})

	t.Run("Child", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(&buf, Options{Verbose: 4}).Child("config")

		log.Info().Msg("resolved")
		assert.Contains(t, buf.String(), "component=config")
	})

	t.Run("Nop", func(t *testing.T) {
		log := Nop()
		assert.NotPanics(t, func() {
			log.Info().Msg("dropped")
			log.Child("x").Error().Msg("dropped")
		})
	})
}

func TestStringSink(t *testing.T) {
	sink := NewStringSink()
	log := New(io.Discard, Options{Verbose: 4, Sink: sink})

	log.Info().Msg("Hello from core module A")
	log.Debug().Msg("below level")
	log.Info().Msg("Goodbye from core module A")

	lines := sink.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Hello from core module A", lines[0])
	assert.Equal(t, "Hello from core module A\nGoodbye from core module A", sink.Logs())

	// Returned slices are copies
	lines[0] = "changed"
	assert.Equal(t, "Hello from core module A", sink.Lines()[0])

	sink.Disable()
	log.Info().Msg("not captured")
	assert.Len(t, sink.Lines(), 2)

	sink.Enable()
	log.Info().Msg("captured")
	assert.Len(t, sink.Lines(), 3)

	sink.Clear()
	assert.Empty(t, sink.Lines())
	assert.Empty(t, sink.Logs())
}

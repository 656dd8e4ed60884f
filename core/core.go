// Package core holds the placeholder business functions of the template.
// Replace them with real application code.
package core

import (
	"github.com/lixenwraith/pymodule/logger"
)

// HelloA logs a greeting and returns 1.
func HelloA(log *logger.Logger) int {
	log.Info().Msg("Hello from core module A")
	return 1
}

// GoodbyeA logs a farewell and returns -1.
func GoodbyeA(log *logger.Logger) int {
	log.Info().Msg("Goodbye from core module A")
	return -1
}

// HelloB logs a greeting and returns 2.
func HelloB(log *logger.Logger) int {
	log.Info().Msg("Hello from core module B")
	return 2
}

// GoodbyeB logs a farewell and returns -2.
func GoodbyeB(log *logger.Logger) int {
	log.Info().Msg("Goodbye from core module B")
	return -2
}

func HelloUtils(log *logger.Logger) {
	log.Info().Msg("Hello from utils")
}

package app

import (
	"io"
	"os"

	"github.com/guttosm/packing-report/internal/logger"
	"github.com/rs/zerolog/log"
)

// ServiceName tags every log line written by the server.
const ServiceName = "packing-report"

// InitializeLogger configures the global logger from LOG_LEVEL and LOG_PRETTY.
func InitializeLogger() {
	initializeLogger(os.Stderr)
}

func initializeLogger(w io.Writer) {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logger.InitWithWriter(w, level, os.Getenv("LOG_PRETTY") == "true")
	log.Logger = log.With().Str("service", ServiceName).Logger()
}

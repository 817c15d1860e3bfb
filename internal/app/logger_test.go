//go:build !integration

package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeLogger(t *testing.T) {
	previous, previousLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = previous
		zerolog.SetGlobalLevel(previousLevel)
	})

	tests := []struct {
		name      string
		logLevel  string
		wantLevel zerolog.Level
		logsInfo  bool
	}{
		{"unset level defaults to info", "", zerolog.InfoLevel, true},
		{"debug", "debug", zerolog.DebugLevel, true},
		{"warn hides info", "warn", zerolog.WarnLevel, false},
		{"unknown level falls back to info", "verbose", zerolog.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.logLevel)
			t.Setenv("LOG_PRETTY", "")

			var buf bytes.Buffer
			initializeLogger(&buf)
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())

			log.Info().Str("filename", "PACKING LIST 14.xlsx").Msg("Analysis completed")
			if !tt.logsInfo {
				assert.Zero(t, buf.Len())
				return
			}

			var line map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, ServiceName, line["service"])
			assert.Equal(t, "PACKING LIST 14.xlsx", line["filename"])
			assert.Equal(t, "Analysis completed", line["message"])
		})
	}
}

func TestInitializeLogger_Pretty(t *testing.T) {
	previous := log.Logger
	t.Cleanup(func() { log.Logger = previous })
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_PRETTY", "true")

	var buf bytes.Buffer
	initializeLogger(&buf)
	log.Info().Msg("Server starting")

	out := buf.String()
	assert.Contains(t, out, "Server starting")
	assert.Contains(t, out, "service=")
	assert.Contains(t, out, ServiceName)
	assert.False(t, json.Valid(buf.Bytes()))
}

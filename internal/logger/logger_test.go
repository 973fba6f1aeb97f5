package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewVariants(t *testing.T) {
	t.Run("json format logs expected fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, int(zerolog.InfoLevel), "json", false)

		logger.Info().Str("key", "value").Msg("json_test")

		out := buf.String()
		require.Contains(t, out, `"message":"json_test"`)
		require.Contains(t, out, `"key":"value"`)
		require.Contains(t, out, `"service":"tblsd"`)
	})

	t.Run("console format logs human readable output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, int(zerolog.DebugLevel), "console", false)

		logger.Debug().Str("env", "test").Msg("console_log")

		out := buf.String()
		require.Contains(t, out, "console_log")
		require.Contains(t, out, "env=test")
	})

	t.Run("level filters lower events", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, int(zerolog.WarnLevel), "json", false)

		logger.Info().Msg("dropped")
		logger.Warn().Msg("kept")

		out := buf.String()
		require.NotContains(t, out, "dropped")
		require.Contains(t, out, "kept")
	})

	t.Run("sampler reduces output frequency", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf, int(zerolog.InfoLevel), "json", true)

		for i := 0; i < 20; i++ {
			logger.Info().Int("count", i).Msg("sampled")
		}

		count := strings.Count(buf.String(), "sampled")
		require.Greater(t, count, 0)
		require.Less(t, count, 20)
	})
}

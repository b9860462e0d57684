package logd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLogLevel(t *testing.T) {
	logLevel, err := readLogLevelFromEnv()
	require.NoError(t, err)
	assert.Equal(t, InfoLevel, logLevel)
}

func TestLogLevelFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnv, "debug")

	logLevel, err := readLogLevelFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DebugLevel, logLevel)
}

func TestLogLevelFromEnvUnknown(t *testing.T) {
	t.Setenv(LogLevelEnv, "unknown")

	logLevel, err := readLogLevelFromEnv()
	require.Error(t, err)
	assert.Equal(t, InfoLevel, logLevel)
}

func TestParseLogLevel(t *testing.T) {
	t.Run("case and whitespace are ignored", func(t *testing.T) {
		logLevel, err := ParseLogLevel(" TRACE ")
		require.NoError(t, err)
		assert.Equal(t, TraceLevel, logLevel)
	})
	t.Run("level names round trip", func(t *testing.T) {
		for _, level := range []LogLevel{TraceLevel, DebugLevel, InfoLevel} {
			parsed, err := ParseLogLevel(level.String())
			require.NoError(t, err)
			assert.Equal(t, level, parsed)
		}
	})
}

func TestLogger(t *testing.T) {
	t.Run("log level Info", func(t *testing.T) {
		logBuffer := bytes.Buffer{}
		log := Logger{newZapLogger(NewPrettyLogWriter(WithWriter(&logBuffer)), InfoLevel)}

		log.Info("Info message")
		log.Debug("Debug message")

		assert.Contains(t, logBuffer.String(), "Info message")
		assert.NotContains(t, logBuffer.String(), "Debug message")
		assert.NotContains(t, logBuffer.String(), "dpanic")
	})
	t.Run("log level Debug", func(t *testing.T) {
		logBuffer := bytes.Buffer{}
		log := Logger{newZapLogger(NewPrettyLogWriter(WithWriter(&logBuffer)), DebugLevel)}

		log.Info("Info message")
		log.Debug("Debug message")
		log.Trace("Trace message")

		assert.Contains(t, logBuffer.String(), "Info message")
		assert.Contains(t, logBuffer.String(), "Debug message")
		assert.NotContains(t, logBuffer.String(), "Trace message")
		assert.Contains(t, logBuffer.String(), `"level":"debug"`)
	})
	t.Run("warnings are tagged", func(t *testing.T) {
		logBuffer := bytes.Buffer{}
		log := Logger{newZapLogger(NewPrettyLogWriter(WithWriter(&logBuffer)), InfoLevel)}

		log.WithName("selector").Warn("skipping label pair", "pair", "app")

		assert.Contains(t, logBuffer.String(), `"severity":"warning"`)
		assert.Contains(t, logBuffer.String(), `"logger":"selector"`)
	})
}

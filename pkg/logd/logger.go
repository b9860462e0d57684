package logd

import (
	"os"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

const LogLevelEnv = "LOG_LEVEL"

// LogLevel is the logr verbosity a message is logged with; zap levels are the negated value.
type LogLevel int

const (
	TraceLevel LogLevel = 2
	DebugLevel LogLevel = 1
	InfoLevel  LogLevel = 0
)

var (
	baseLogLevel    LogLevel
	baseLogLevelErr error
	baseLogger      Logger
)

func init() {
	// creating a zap logger is rather expensive, all component loggers are derived from this one via WithName
	baseLogLevel, baseLogLevelErr = readLogLevelFromEnv()
	baseLogger = Logger{newZapLogger(NewPrettyLogWriter(), baseLogLevel)}
}

// Logger is a logr.Logger with shortcuts for the verbosity levels used by the webhook.
type Logger struct {
	logr.Logger
}

// Get returns the unnamed base logger, use WithName to derive component loggers from it.
func Get() Logger {
	return baseLogger
}

func (l Logger) WithName(name string) Logger {
	return Logger{l.Logger.WithName(name)}
}

func (l Logger) WithValues(keysAndValues ...any) Logger {
	return Logger{l.Logger.WithValues(keysAndValues...)}
}

func (l Logger) Debug(msg string, keysAndValues ...any) {
	l.V(int(DebugLevel)).Info(msg, keysAndValues...)
}

func (l Logger) Trace(msg string, keysAndValues ...any) {
	l.V(int(TraceLevel)).Info(msg, keysAndValues...)
}

// Warn logs on info verbosity, logr has no level above info except errors.
func (l Logger) Warn(msg string, keysAndValues ...any) {
	l.Info(msg, append(keysAndValues, "severity", "warning")...)
}

// LogBaseLoggerSettings logs the effective log level, and the reason if LOG_LEVEL could not be used.
func LogBaseLoggerSettings() {
	log := baseLogger.WithName("logd")
	if baseLogLevelErr != nil {
		log.Error(baseLogLevelErr, "falling back to default log level", "logLevel", baseLogLevel.String())

		return
	}

	log.Info("logging level", "logLevel", baseLogLevel.String())
}

func (level LogLevel) String() string {
	switch level {
	case TraceLevel:
		return "trace"
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	default:
		return "unknown"
	}
}

func ParseLogLevel(value string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	default:
		return InfoLevel, errors.Errorf("unknown log level %q", value)
	}
}

func readLogLevelFromEnv() (LogLevel, error) {
	return ParseLogLevel(os.Getenv(LogLevelEnv))
}

package cavia

import (
	"context"
	"fmt"
	"strings"

	"github.com/xraph/go-utils/log"
)

// LoggerLevel is the verbosity of the application logger.
type LoggerLevel int

const (
	LevelOff LoggerLevel = iota
	LevelFatal
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelTrace
	LevelAll
)

var loggerLevelNames = map[LoggerLevel]string{
	LevelOff:   "off",
	LevelFatal: "fatal",
	LevelError: "error",
	LevelWarn:  "warn",
	LevelInfo:  "info",
	LevelDebug: "debug",
	LevelTrace: "trace",
	LevelAll:   "all",
}

// String returns the level name.
func (l LoggerLevel) String() string {
	if name, ok := loggerLevelNames[l]; ok {
		return name
	}

	return fmt.Sprintf("LoggerLevel(%d)", int(l))
}

// ParseLoggerLevel parses a level name. The empty string is LevelAll.
func ParseLoggerLevel(s string) (LoggerLevel, error) {
	if s == "" {
		return LevelAll, nil
	}

	for level, name := range loggerLevelNames {
		if strings.EqualFold(s, name) {
			return level, nil
		}
	}

	return LevelOff, fmt.Errorf("unknown logger level %q", s)
}

// logLevel maps the level onto the log package. Trace and All have no
// counterpart below debug.
func (l LoggerLevel) logLevel() log.LogLevel {
	switch l {
	case LevelFatal:
		return log.LevelFatal
	case LevelError:
		return log.LevelError
	case LevelWarn:
		return log.LevelWarn
	case LevelInfo:
		return log.LevelInfo
	default:
		return log.LevelDebug
	}
}

// LoggerLevelToken is the token of the built-in logger level provider.
var LoggerLevelToken = NewSymbol("LOGGER_LEVEL")

// LoggerToken is the token of the built-in application logger. A
// constructor parameter of type log.Logger infers it.
var LoggerToken = TypeOf[log.Logger]()

// LoggerLevelProvider provides level under LoggerLevelToken.
func LoggerLevelProvider(level LoggerLevel) ValueProvider {
	return ValueProvider{Provide: LoggerLevelToken, UseValue: level}
}

// LoggerProvider provides the application logger under LoggerToken, built
// from cfg at the level resolved from LoggerLevelToken.
func LoggerProvider(cfg LoggingConfig) FactoryProvider {
	return FactoryProvider{
		Provide:      LoggerToken,
		Dependencies: Deps(LoggerLevelToken),
		UseFactory: func(ctx context.Context, deps []any) (any, error) {
			level, ok := deps[0].(LoggerLevel)
			if !ok {
				return nil, ErrTypeMismatch(LoggerLevelToken.TokenName(), deps[0])
			}

			return NewLogger(cfg, level), nil
		},
	}
}

// NewLogger builds the application logger. LevelOff yields a no-op logger;
// the json format or the production environment selects the production
// encoder, anything else the development console encoder.
func NewLogger(cfg LoggingConfig, level LoggerLevel) log.Logger {
	if level == LevelOff {
		return log.NewNoopLogger()
	}

	return log.NewLogger(log.LoggingConfig{
		Level:       level.logLevel(),
		Format:      cfg.Format,
		Environment: cfg.Environment,
	})
}

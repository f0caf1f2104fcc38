package cavia

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xraph/go-utils/errs"
	"github.com/xraph/go-utils/log"
)

func TestParseLoggerLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LoggerLevel
	}{
		{"", LevelAll},
		{"off", LevelOff},
		{"FATAL", LevelFatal},
		{"error", LevelError},
		{"warn", LevelWarn},
		{"info", LevelInfo},
		{"debug", LevelDebug},
		{"trace", LevelTrace},
		{"all", LevelAll},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLoggerLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLoggerLevel("loud")
	assert.Error(t, err)
}

func TestLoggerLevel_String(t *testing.T) {
	assert.Equal(t, "off", LevelOff.String())
	assert.Equal(t, "trace", LevelTrace.String())
	assert.Equal(t, "LoggerLevel(42)", LoggerLevel(42).String())
}

func TestLoggerLevel_LogLevel(t *testing.T) {
	assert.Equal(t, log.LevelFatal, LevelFatal.logLevel())
	assert.Equal(t, log.LevelError, LevelError.logLevel())
	assert.Equal(t, log.LevelWarn, LevelWarn.logLevel())
	assert.Equal(t, log.LevelInfo, LevelInfo.logLevel())
	assert.Equal(t, log.LevelDebug, LevelDebug.logLevel())
	assert.Equal(t, log.LevelDebug, LevelTrace.logLevel())
	assert.Equal(t, log.LevelDebug, LevelAll.logLevel())
}

func TestNewLogger_Off(t *testing.T) {
	logger := NewLogger(LoggingConfig{}, LevelOff)

	assert.IsType(t, log.NewNoopLogger(), logger)
	assert.NoError(t, logger.Sync())
}

func TestNewLogger_Formats(t *testing.T) {
	tests := []struct {
		name string
		cfg  LoggingConfig
	}{
		{"json", LoggingConfig{Format: "json"}},
		{"console", LoggingConfig{Format: "console"}},
		{"production environment", LoggingConfig{Format: "console", Environment: "production"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.cfg, LevelError)
			require.NotNil(t, logger)
			assert.NotEqual(t, reflect.TypeOf(log.NewNoopLogger()), reflect.TypeOf(logger))

			// Below the configured level, so nothing is written.
			logger.Debug("ignored", log.Int("attempt", 1))
		})
	}
}

func TestLoggerProvider_DependsOnLevel(t *testing.T) {
	ctx := context.Background()

	c, err := NewContainer(ctx, []Provider{
		LoggerProvider(LoggingConfig{Format: "json"}),
		LoggerLevelProvider(LevelOff),
	})
	require.NoError(t, err)

	logger := MustFind[log.Logger](ctx, c, LoggerToken)
	assert.IsType(t, log.NewNoopLogger(), logger, "level is read from LoggerLevelToken")

	level := MustFind[LoggerLevel](ctx, c, LoggerLevelToken)
	assert.Equal(t, LevelOff, level)

	got, err := GetLogger(ctx, c)
	require.NoError(t, err)
	assert.Same(t, logger, got)
}

func TestLoggerProvider_WrongLevelType(t *testing.T) {
	ctx := context.Background()

	_, err := NewContainer(ctx, []Provider{
		LoggerProvider(LoggingConfig{}),
		ValueProvider{Provide: LoggerLevelToken, UseValue: "debug"},
	})
	assert.ErrorIs(t, err, ErrTypeMismatchSentinel)
}

func TestLoggerToken_InferredFromConstructor(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	type service struct{ logger log.Logger }

	svcType := MustType("Service", func(logger log.Logger) *service {
		return &service{logger: logger}
	})
	reg.Injectable(svcType)

	testLogger := log.NewTestLogger()

	c, err := NewContainer(ctx, []Provider{
		svcType,
		ValueProvider{Provide: LoggerToken, UseValue: testLogger},
	}, WithMetadata(reg))
	require.NoError(t, err)

	svc := MustFind[*service](ctx, c, svcType)
	assert.Same(t, testLogger, svc.logger)
}

func TestGetLogger_NotRegistered(t *testing.T) {
	ctx := context.Background()

	c, err := NewContainer(ctx, nil)
	require.NoError(t, err)

	_, err = GetLogger(ctx, c)
	assert.True(t, errs.IsNotFound(err))
}

// Package logging builds the zap loggers used by the firlab command and
// pipeline. The numeric packages never log.
package logging

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ErrInvalidFormat is returned for an unknown output format.
var ErrInvalidFormat = errors.New("logging: invalid format")

// Option mutates the zap configuration before the logger is built.
type Option func(cfg *zap.Config)

// WithOutputPaths replaces the default stderr sink.
func WithOutputPaths(paths ...string) Option {
	return func(cfg *zap.Config) {
		if len(paths) == 0 {
			return
		}
		cfg.OutputPaths = append([]string(nil), paths...)
	}
}

// WithFields attaches fields to every log line. Empty keys are skipped.
func WithFields(fields map[string]any) Option {
	return func(cfg *zap.Config) {
		if cfg.InitialFields == nil {
			cfg.InitialFields = map[string]any{}
		}
		for key, value := range fields {
			if key == "" {
				continue
			}
			cfg.InitialFields[key] = value
		}
	}
}

// WithDevelopment toggles zap development mode (DPanic panics, stack traces on warn).
func WithDevelopment(dev bool) Option {
	return func(cfg *zap.Config) {
		cfg.Development = dev
	}
}

// New returns a logger at the given level ("debug", "info", "warn", "error")
// writing console or JSON lines with ISO8601 timestamps.
func New(level, format string, opts ...Option) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Sampling = nil
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatConsole:
		cfg.Encoding = FormatConsole
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case FormatJSON:
		cfg.Encoding = FormatJSON
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger, err := cfg.Build(zap.AddCaller())
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps a level name to a zap level. An empty name means info.
func ParseLevel(level string) (zapcore.Level, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	if name == "warning" {
		name = "warn"
	}
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("logging: %w", err)
	}
	return lvl, nil
}

// Package logging builds the zap logger used across dashdeck.
//
// The terminal belongs to the TUI, so logs always go to a file. Loggers are
// injected and Named per component: lggr.Named("orders").
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the log file and minimum level.
type Config struct {
	Path  string
	Level string
}

// ParseLevel maps a level name such as "debug" or "warn" to a zap level.
// An empty name means info.
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return lvl, nil
}

// New returns a sugared logger writing JSON lines to c.Path and a cleanup
// func that flushes it. An empty path discards all output.
func (c Config) New() (*zap.SugaredLogger, func(), error) {
	if c.Path == "" {
		return zap.NewNop().Sugar(), func() {}, nil
	}

	lvl, err := ParseLevel(c.Level)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(filepath.Dir(c.Path), 0o700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level.SetLevel(lvl)
	cfg.OutputPaths = []string{c.Path}
	cfg.ErrorOutputPaths = []string{c.Path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Sampling = nil

	core, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}

	lggr := core.Sugar().Named("dashdeck")
	return lggr, func() { _ = lggr.Sync() }, nil
}

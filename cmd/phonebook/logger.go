package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/smileynet/phonebook/internal/config"
)

// newLogger builds a console logger from cfg. Level "off" yields a no-op logger.
func newLogger(cfg config.Log) (*zap.Logger, error) {
	if cfg.Level == "" || cfg.Level == config.LogOff {
		return zap.NewNop(), nil
	}

	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	out := "stderr"
	if cfg.File != "" {
		out = cfg.File
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{out}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: opening %s: %w", out, err)
	}
	return logger, nil
}

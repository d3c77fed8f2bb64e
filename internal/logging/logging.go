/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package logging builds the zap loggers of the entitymap commands.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/suparena/entitymap/errors"
)

// New creates a logger writing to stderr at level ("debug", "info", "warn" or
// "error"; empty means "info"). dev selects the human-readable console format,
// otherwise entries are JSON.
func New(level string, dev bool) (*zap.Logger, error) {
	return NewWithWriter(level, dev, os.Stderr)
}

// NewWithWriter is New writing to w.
func NewWithWriter(level string, dev bool, w io.Writer) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	if dev {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), lvl)
	opts := []zap.Option{zap.AddStacktrace(zap.ErrorLevel)}
	if dev {
		opts = append(opts, zap.AddCaller(), zap.Development())
	}
	return zap.New(core, opts...), nil
}

// ParseLevel converts a level name to a zap level. "warning" is accepted for "warn".
func ParseLevel(level string) (zapcore.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	switch level {
	case "":
		return zap.InfoLevel, nil
	case "warning":
		return zap.WarnLevel, nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.InfoLevel, errors.NewInvalidArgumentError("level", err.Error())
	}
	return lvl, nil
}

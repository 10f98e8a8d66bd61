// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package logging builds the zap loggers Flint components share. Console
// output goes to stderr so it never interleaves with script print output on
// stdout; file output rotates through lumberjack.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a logger.
type Options struct {
	// Level is a zap level name: debug, info, warn, error. Empty means info.
	Level string

	// File, when set, routes output to a rotated log file instead of stderr.
	File string

	// MaxSizeMB caps a log file before rotation. Zero means 100.
	MaxSizeMB int

	// MaxBackups bounds how many rotated files are kept. Zero means 3.
	MaxBackups int
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		var err error
		level, err = zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("parsing log level: %w", err)
		}
	}

	var sink zapcore.WriteSyncer
	var enc zapcore.Encoder
	if opts.File != "" {
		maxSize := opts.MaxSizeMB
		if maxSize == 0 {
			maxSize = 100
		}
		maxBackups := opts.MaxBackups
		if maxBackups == 0 {
			maxBackups = 3
		}
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			Compress:   true,
		})
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		sink = zapcore.Lock(os.Stderr)
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(enc, sink, level)
	return zap.New(core), nil
}

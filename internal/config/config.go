// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package config loads Flint's runtime configuration. Values come from an
// optional flint.yaml (working directory or ~/.config/flint), overridden by
// FLINT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config struct {
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// LogFile, when set, sends logs to a rotated file instead of stderr.
	LogFile string `mapstructure:"log_file"`

	// Workers bounds CPU parallelism for tensor kernels and data loading.
	Workers int `mapstructure:"workers"`

	// Encoding names the default tiktoken vocabulary for text datasets.
	Encoding string `mapstructure:"encoding"`

	// ScriptRoot is the directory //flint:load paths resolve against when a
	// script is read from stdin. Defaults to the working directory.
	ScriptRoot string `mapstructure:"script_root"`
}

// Load resolves configuration from files and the environment. A missing
// config file is not an error; malformed files are.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("encoding", "cl100k_base")
	v.SetDefault("script_root", ".")

	v.SetConfigName("flint")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/flint")

	v.SetEnvPrefix("FLINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	return &cfg, nil
}

// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintml/flint/internal/config"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir()) // no flint.yaml here

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.Equal(t, "cl100k_base", cfg.Encoding)
	assert.Equal(t, ".", cfg.ScriptRoot)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "log_level: debug\nworkers: 2\nencoding: gpt2\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flint.yaml"), []byte(yaml), 0o644))
	chdir(t, dir)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "gpt2", cfg.Encoding)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flint.yaml"), []byte("log_level: debug\n"), 0o644))
	chdir(t, dir)
	t.Setenv("FLINT_LOG_LEVEL", "warn")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_RejectsBadWorkers(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FLINT_WORKERS", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "flint.yaml"), []byte("log_level: [\n"), 0o644))
	chdir(t, dir)

	_, err := config.Load()
	assert.Error(t, err)
}

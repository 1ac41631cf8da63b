// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdamorph/lambdamorph/internal/config"
)

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, config.Defaults(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lambdamorph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reduction-budget: 42\nregistry-dir: ./morphs\n"), 0o644))

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.ReductionBudget)
	assert.Equal(t, "./morphs", cfg.RegistryDir)
	assert.Equal(t, config.Defaults().OutputFormat, cfg.OutputFormat)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lambdamorph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("reduction-budget: 42\n"), 0o644))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("reduction-budget", 0, "")
	require.NoError(t, fs.Set("reduction-budget", "99"))

	cfg, err := config.Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, 99, cfg.ReductionBudget)
}

func TestLoad_MissingFilePathIsSkippedNotError(t *testing.T) {
	_, err := config.Load("", nil)
	assert.NoError(t, err)
}

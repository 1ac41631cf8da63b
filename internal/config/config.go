// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

// Package config loads the engine's runtime configuration by layering a
// YAML file over CLI flag overrides, using koanf the way a twelve-factor
// Go service does: defaults first, file second, flags last.
package config

import (
	"errors"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// Config holds the tunables that shape verification (§4.2-4.8).
type Config struct {
	// RegistryDir is the directory of *.morph files loaded at startup.
	RegistryDir string `koanf:"registry-dir"`
	// ReductionBudget bounds β-reduction steps (§4.3, default 1000).
	ReductionBudget int `koanf:"reduction-budget"`
	// ExpandMaxDepth bounds definition-expansion chain depth (§4.4, default 10).
	ExpandMaxDepth int `koanf:"expand-max-depth"`
	// RewriteMaxDepth bounds the algebraic rewrite search (§4.7).
	RewriteMaxDepth int `koanf:"rewrite-max-depth"`
	// OutputFormat is "json" or "text" for CLI and log output.
	OutputFormat string `koanf:"output-format"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log-level"`
}

// Defaults returns the configuration used when neither a file nor flags
// override a field.
func Defaults() Config {
	return Config{
		RegistryDir:     "registry",
		ReductionBudget: 1000,
		ExpandMaxDepth:  10,
		RewriteMaxDepth: 8,
		OutputFormat:    "text",
		LogLevel:        "info",
	}
}

// Load builds a Config from, in increasing precedence: the compiled-in
// defaults, an optional YAML file at path (skipped silently if path is
// empty or the file does not exist), and the flags bound in fs.
func Load(path string, fs *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	defaults := Defaults()
	defaultsMap := map[string]any{
		"registry-dir":      defaults.RegistryDir,
		"reduction-budget":  defaults.ReductionBudget,
		"expand-max-depth":  defaults.ExpandMaxDepth,
		"rewrite-max-depth": defaults.RewriteMaxDepth,
		"output-format":     defaults.OutputFormat,
		"log-level":         defaults.LogLevel,
	}
	if err := k.Load(confmap.Provider(defaultsMap, "."), nil); err != nil {
		return Config{}, oops.Wrapf(err, "config: load defaults")
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, oops.With("path", path).Wrapf(err, "config: load file")
		}
	}

	if fs != nil {
		if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
			return Config{}, oops.Wrapf(err, "config: load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, oops.Wrapf(err, "config: unmarshal")
	}
	return cfg, nil
}

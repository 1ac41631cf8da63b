// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lambdamorph/lambdamorph/internal/registry"
	"github.com/lambdamorph/lambdamorph/internal/term"
)

type registerConfig struct {
	registryDir string
	name        string
	category    string
	purity      float64
}

// newRegisterCmd creates the register subcommand: it parses and
// validates an expression, then writes it as a new .morph file into the
// registry directory, content-addressed alongside the others.
func newRegisterCmd() *cobra.Command {
	cfg := &registerConfig{}

	cmd := &cobra.Command{
		Use:   "register <expression>",
		Short: "Register a new named canonical morphism",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd, cfg, args[0])
		},
	}

	cmd.Flags().StringVar(&cfg.registryDir, "registry-dir", "", "directory of .morph canonical definitions")
	cmd.Flags().StringVar(&cfg.name, "name", "", "registry identifier for the new canonical (required, must start with an uppercase letter)")
	cmd.Flags().StringVar(&cfg.category, "category", "", "free-form category label")
	cmd.Flags().Float64Var(&cfg.purity, "purity", 0, "informational purity score in [0,1]; not enforced by the engine")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runRegister(cmd *cobra.Command, rcfg *registerConfig, expression string) error {
	loaded, err := loadConfig(cmd.Flags())
	if err != nil {
		return exitWith(1, err)
	}
	if rcfg.registryDir != "" {
		loaded.RegistryDir = rcfg.registryDir
	}

	if !term.IsRegistryIdentifier(rcfg.name) {
		return exitWith(2, errMustBeIdentifier(rcfg.name))
	}
	if rcfg.purity < 0 || rcfg.purity > 1 {
		return exitWith(2, fmt.Errorf("register: purity must be in [0,1], got %v", rcfg.purity))
	}
	ast, err := term.Parse(expression)
	if err != nil {
		return exitWith(2, err)
	}

	if err := os.MkdirAll(loaded.RegistryDir, 0o750); err != nil {
		return exitWith(1, err)
	}

	m := registry.Morphism{
		Hash:           registry.ComputeHash(ast),
		Name:           rcfg.name,
		Definition:     ast,
		DefinitionText: term.Pretty(ast),
		Category:       rcfg.category,
		Purity:         rcfg.purity,
	}
	path := filepath.Join(loaded.RegistryDir, m.Hash+".morph")
	contents := registry.RenderMorphFile(m)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		return exitWith(1, err)
	}

	cmd.Printf("registered %s -> %s\n", rcfg.name, path)
	return nil
}

func errMustBeIdentifier(name string) error {
	return fmt.Errorf("register: %q must start with an uppercase letter to be a registry identifier", name)
}

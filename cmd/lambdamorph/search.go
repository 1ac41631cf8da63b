// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/lambdamorph/lambdamorph/pkg/lambdamorph"
)

type searchConfig struct {
	registryDir string
}

// newSearchCmd creates the search subcommand: it expands and normalizes
// an expression without comparing it against the registry, so a user can
// inspect the intermediate form the verifier would reason about.
func newSearchCmd() *cobra.Command {
	cfg := &searchConfig{}

	cmd := &cobra.Command{
		Use:   "search <expression>",
		Short: "Expand and normalize an expression without matching it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, cfg, args[0])
		},
	}

	cmd.Flags().StringVar(&cfg.registryDir, "registry-dir", "", "directory of .morph canonical definitions")
	return cmd
}

func runSearch(cmd *cobra.Command, scfg *searchConfig, expression string) error {
	loaded, err := loadConfig(cmd.Flags())
	if err != nil {
		return exitWith(1, err)
	}
	if scfg.registryDir != "" {
		loaded.RegistryDir = scfg.registryDir
	}

	engine := lambdamorph.NewEngine(loaded)
	if err := engine.LoadRegistryDir(loaded.RegistryDir); err != nil {
		return exitWith(1, err)
	}

	result, err := engine.Search(expression)
	if err != nil {
		return exitWith(2, err)
	}

	cmd.Println(lambdamorph.Pretty(result))
	return nil
}

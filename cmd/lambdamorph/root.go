// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lambdamorph/lambdamorph/internal/config"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the lambdamorph CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lambdamorph",
		Short: "lambdamorph - a semantic equivalence engine for the untyped λ-calculus",
		Long: `lambdamorph decides whether a λ-expression is equivalent to a named
canonical morphism in its registry, and returns a reproducible proof trail
(β-reduction steps, definition expansions, algebraic rewrites and the
final α-equivalence check) justifying the verdict.`,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (YAML)")

	cmd.AddCommand(newVerifyCmd())
	cmd.AddCommand(newRegisterCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newGenSchemaCmd())

	return cmd
}

// loadConfig layers the persistent --config file under the subcommand's
// own flag set, per internal/config's precedence rules.
func loadConfig(fs *pflag.FlagSet) (config.Config, error) {
	return config.Load(configFile, fs)
}

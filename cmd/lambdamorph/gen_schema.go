// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lambdamorph/lambdamorph/pkg/proof"
)

// newGenSchemaCmd creates the gen-schema subcommand: it writes the JSON
// Schema for the proof document, so external tooling can validate the
// engine's output without depending on this module.
func newGenSchemaCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "gen-schema",
		Short: "Generate the JSON Schema for the proof document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenSchema(cmd, outPath)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", filepath.Join("schemas", "proof.schema.json"), "output path")
	return cmd
}

func runGenSchema(cmd *cobra.Command, outPath string) error {
	data, err := json.MarshalIndent(proof.Schema(), "", "  ")
	if err != nil {
		return exitWith(1, err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return exitWith(1, err)
	}
	if err := os.WriteFile(outPath, data, 0o600); err != nil {
		return exitWith(1, err)
	}

	cmd.Printf("generated %s\n", outPath)
	return nil
}

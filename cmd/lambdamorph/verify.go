// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lambdamorph/lambdamorph/internal/pipeline"
	"github.com/lambdamorph/lambdamorph/pkg/lambdamorph"
)

type verifyConfig struct {
	registryDir string
	jsonOutput  bool
}

// newVerifyCmd creates the verify subcommand: the engine's primary
// operation, deciding whether an expression is equivalent to a
// registered canonical (exit codes: 0 matched, 1 no match, 2 parse
// error, 3 internal limit exceeded).
func newVerifyCmd() *cobra.Command {
	cfg := &verifyConfig{}

	cmd := &cobra.Command{
		Use:   "verify <expression>",
		Short: "Verify an expression against the morphism registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, cfg, args[0])
		},
	}

	cmd.Flags().StringVar(&cfg.registryDir, "registry-dir", "", "directory of .morph canonical definitions")
	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output the proof as JSON")

	return cmd
}

func runVerify(cmd *cobra.Command, vcfg *verifyConfig, expression string) error {
	loaded, err := loadConfig(cmd.Flags())
	if err != nil {
		return exitWith(1, err)
	}
	if vcfg.registryDir != "" {
		loaded.RegistryDir = vcfg.registryDir
	}

	engine := lambdamorph.NewEngine(loaded)
	if err := engine.LoadRegistryDir(loaded.RegistryDir); err != nil {
		return exitWith(1, err)
	}

	p, err := engine.Verify(cmd.Context(), expression)
	if err != nil {
		if errors.Is(err, pipeline.ErrBudgetExceeded) {
			return exitWith(3, err)
		}
		return exitWith(2, err)
	}

	if err := printProof(cmd, p, vcfg.jsonOutput); err != nil {
		return exitWith(1, err)
	}
	if !p.Matched {
		return exitWith(1, nil)
	}
	return nil
}

func printProof(cmd *cobra.Command, p *lambdamorph.Proof, jsonOutput bool) error {
	if jsonOutput {
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal proof: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if p.Matched {
		cmd.Printf("MATCH %s (%s)\n", p.CanonicalName, p.CanonicalHash)
	} else {
		cmd.Println("NO MATCH")
	}
	cmd.Printf("normal form: %s\n", p.NormalForm)
	cmd.Printf("reasoning:   %s\n", p.Reasoning)
	for i, step := range p.Steps {
		cmd.Printf("  %d. [%s] %s -> %s\n", i+1, step.Rule, step.From, step.To)
	}
	return nil
}

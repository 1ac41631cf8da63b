// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

// Package lambdamorph is the public facade over the verification engine:
// parsing, pretty-printing, normalization, and the top-level Engine type
// that ties a registry to the verification pipeline.
package lambdamorph

import (
	"context"

	"github.com/lambdamorph/lambdamorph/internal/alpha"
	"github.com/lambdamorph/lambdamorph/internal/config"
	"github.com/lambdamorph/lambdamorph/internal/expand"
	"github.com/lambdamorph/lambdamorph/internal/pipeline"
	"github.com/lambdamorph/lambdamorph/internal/reduce"
	"github.com/lambdamorph/lambdamorph/internal/registry"
	"github.com/lambdamorph/lambdamorph/internal/term"
	"github.com/lambdamorph/lambdamorph/pkg/proof"
)

// Term is the parsed AST of a λ-expression.
type Term = term.Term

// Proof is the verification result type returned by Engine.Verify.
type Proof = proof.Proof

// Parse parses surface syntax into a Term.
func Parse(text string) (Term, error) {
	return term.Parse(text)
}

// Pretty renders a Term back to its canonical surface syntax.
func Pretty(t Term) string {
	return term.Pretty(t)
}

// Normalize reduces t to β-normal form, or as far as budget allows.
func Normalize(t Term, budget int) (Term, int, bool) {
	nf := reduce.Normalize(t, budget)
	return nf.Term, nf.Steps, nf.ReachedBudget
}

// AlphaEqual reports whether two terms are equivalent modulo consistent
// renaming of bound variables.
func AlphaEqual(a, b Term) bool {
	return alpha.Equal(a, b)
}

// Engine ties a morphism registry to the verification pipeline: it is
// the single object a host program needs to verify expressions and
// manage the set of known canonicals.
type Engine struct {
	reg *registry.Registry
	cfg config.Config
}

// NewEngine constructs an Engine with an empty registry and the given
// configuration.
func NewEngine(cfg config.Config) *Engine {
	return &Engine{reg: registry.New(), cfg: cfg}
}

// LoadRegistryDir loads every *.morph file under dir into the engine's
// registry.
func (e *Engine) LoadRegistryDir(dir string) error {
	return registry.LoadDir(e.reg, dir)
}

// Register adds a named canonical, parsed from src, to the registry.
func (e *Engine) Register(name, src string, category string, purity float64) (*registry.Morphism, error) {
	ast, err := term.Parse(src)
	if err != nil {
		return nil, err
	}
	return e.reg.Register(registry.Morphism{
		Name:           name,
		Definition:     ast,
		DefinitionText: src,
		Category:       category,
		Purity:         purity,
	})
}

// Verify decides whether text is equivalent to a registered canonical,
// returning the full proof trail.
func (e *Engine) Verify(ctx context.Context, text string) (*Proof, error) {
	return pipeline.FindCanonical(ctx, e.reg, text, e.cfg)
}

// Search expands and normalizes text without comparing it against the
// registry, returning the resulting term — useful for inspecting an
// expression in isolation (the CLI's "search" subcommand prints it).
func (e *Engine) Search(text string) (Term, error) {
	ast, err := term.Parse(text)
	if err != nil {
		return nil, err
	}
	expanded := expand.Expand(ast, e.reg, e.cfg.ExpandMaxDepth)
	nf := reduce.Normalize(expanded.Term, e.cfg.ReductionBudget)
	return nf.Term, nil
}

// Iterate returns every registered morphism, in registration order.
func (e *Engine) Iterate() []*registry.Morphism {
	return e.reg.Iterate()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdamorph/lambdamorph/internal/config"
	"github.com/lambdamorph/lambdamorph/internal/pipeline"
	"github.com/lambdamorph/lambdamorph/internal/registry"
	"github.com/lambdamorph/lambdamorph/internal/term"
	"github.com/lambdamorph/lambdamorph/pkg/errutil"
)

func register(t *testing.T, reg *registry.Registry, name, src string, purity float64) {
	t.Helper()
	ast, err := term.Parse(src)
	require.NoError(t, err)
	_, err = reg.Register(registry.Morphism{Name: name, Definition: ast, Purity: purity})
	require.NoError(t, err)
}

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.ExpandMaxDepth = 10
	cfg.ReductionBudget = 1000
	cfg.RewriteMaxDepth = 8
	return cfg
}

func TestFindCanonical_DirectBetaMatch(t *testing.T) {
	reg := registry.New()
	register(t, reg, "ZERO", `λf. λx. x`, 1.0)

	p, err := pipeline.FindCanonical(context.Background(), reg, `(λy. y) (λf. λx. x)`, testConfig())
	require.NoError(t, err)
	assert.True(t, p.Matched)
	assert.Equal(t, "ZERO", p.CanonicalName)
	assert.NotEmpty(t, p.Steps)
}

func TestFindCanonical_NoMatchIsNotAnError(t *testing.T) {
	reg := registry.New()
	register(t, reg, "ZERO", `λf. λx. x`, 1.0)

	p, err := pipeline.FindCanonical(context.Background(), reg, `λf. λx. f x`, testConfig())
	require.NoError(t, err)
	assert.False(t, p.Matched)
}

func TestFindCanonical_ParseErrorReturnsError(t *testing.T) {
	reg := registry.New()
	_, err := pipeline.FindCanonical(context.Background(), reg, `λ. x`, testConfig())
	errutil.AssertErrorCode(t, err, "PARSE_FAILED")
	errutil.AssertErrorContext(t, err, "likelyNonTerminating", false)
}

func TestFindCanonical_ParseErrorFlagsLikelyNonTerminatingText(t *testing.T) {
	reg := registry.New()
	_, err := pipeline.FindCanonical(context.Background(), reg, `λx. (x x`, testConfig())
	errutil.AssertErrorCode(t, err, "PARSE_FAILED")
	errutil.AssertErrorContext(t, err, "likelyNonTerminating", true)
}

func TestFindCanonical_DefinitionExpansionThenMatch(t *testing.T) {
	reg := registry.New()
	register(t, reg, "ID", `λx. x`, 1.0)
	register(t, reg, "ZERO", `λf. λx. x`, 1.0)

	p, err := pipeline.FindCanonical(context.Background(), reg, `ID (λf. λx. x)`, testConfig())
	require.NoError(t, err)
	assert.True(t, p.Matched)
	assert.Equal(t, "ZERO", p.CanonicalName)
}

func TestFindCanonical_RewriteFallbackMatchesFusedCanonical(t *testing.T) {
	reg := registry.New()
	register(t, reg, "MAPFUSED", `MAP (λx. f (g x)) xs`, 0.5)

	p, err := pipeline.FindCanonical(context.Background(), reg, `MAP f (MAP g xs)`, testConfig())
	require.NoError(t, err)
	assert.True(t, p.Matched)
	assert.Equal(t, "MAPFUSED", p.CanonicalName)
}

func TestFindCanonical_NonTerminatingCandidateRoutesAroundNormalization(t *testing.T) {
	reg := registry.New()
	yComb := `λg. (λx. g (x x)) (λx. g (x x))`
	register(t, reg, "FIX", yComb, 0.0)

	p, err := pipeline.FindCanonical(context.Background(), reg, `λh. (λy. h (y y)) (λy. h (y y))`, testConfig())
	require.NoError(t, err)
	assert.True(t, p.Matched)
	assert.Equal(t, "FIX", p.CanonicalName)
}

func TestFindCanonical_KnownRecursiveIdentifiersStayOpaqueDuringShallowExpand(t *testing.T) {
	reg := registry.New()
	register(t, reg, "MAP", `λf. λxs. xs`, 0.2)
	register(t, reg, "MAPFUSED", `MAP (λx. f (g x)) xs`, 0.2)

	p, err := pipeline.FindCanonical(context.Background(), reg, `MAP f (MAP g xs)`, testConfig())
	require.NoError(t, err)
	assert.True(t, p.Matched)
	assert.Equal(t, "MAPFUSED", p.CanonicalName)

	var rules []string
	for _, s := range p.Steps {
		rules = append(rules, s.Rule)
	}
	assert.Contains(t, rules, "MAP-FUSION")
}

func TestFindCanonical_AppliedParametrizedCanonicalMatchesByPeeling(t *testing.T) {
	reg := registry.New()
	register(t, reg, "FOLD", `λg. λz. λxs. z`, 0.2)
	register(t, reg, "CONCAT", `λxs. λys. xs`, 0.2)
	register(t, reg, "FLATMAP", `λf. λxs. FOLD (λh. λacc. CONCAT (f h) acc) NIL xs`, 0.2)

	p, err := pipeline.FindCanonical(context.Background(), reg, `FOLD (λh. λacc. CONCAT (f h) acc) NIL xs`, testConfig())
	require.NoError(t, err)
	assert.True(t, p.Matched)
	assert.Equal(t, "FLATMAP", p.CanonicalName)
}

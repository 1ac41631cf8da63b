// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package recur_test

import (
	"testing"

	"github.com/lambdamorph/lambdamorph/internal/recur"
	"github.com/lambdamorph/lambdamorph/internal/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) term.Term {
	t.Helper()
	ast, err := term.Parse(s)
	require.NoError(t, err)
	return ast
}

func TestIsNonTerminatingCandidate_YCombinator(t *testing.T) {
	ast := mustParse(t, `λg. (λx. g (x x)) (λx. g (x x))`)
	assert.True(t, recur.IsNonTerminatingCandidate(ast, term.NameSet{}))
}

func TestIsNonTerminatingCandidate_KnownRecursiveName(t *testing.T) {
	ast := mustParse(t, `FOLD (λh. λacc. CONCAT (f h) acc) NIL xs`)
	known := term.NewNameSet("FOLD", "MAP", "FILTER", "FLATMAP", "CONCAT")
	assert.True(t, recur.IsNonTerminatingCandidate(ast, known))
}

func TestIsNonTerminatingCandidate_PlainTermIsFalse(t *testing.T) {
	ast := mustParse(t, `λx. λy. x y`)
	assert.False(t, recur.IsNonTerminatingCandidate(ast, term.NameSet{}))
}

func TestFallbackStringHeuristic(t *testing.T) {
	assert.True(t, recur.FallbackStringHeuristic(`λx. (x x)`))
	assert.False(t, recur.FallbackStringHeuristic(`λx. x`))
}

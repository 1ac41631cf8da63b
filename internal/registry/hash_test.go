// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdamorph/lambdamorph/internal/registry"
	"github.com/lambdamorph/lambdamorph/internal/term"
)

func mustParse(t *testing.T, s string) term.Term {
	t.Helper()
	ast, err := term.Parse(s)
	require.NoError(t, err)
	return ast
}

func TestComputeHash_StableAcrossAlphaVariants(t *testing.T) {
	a := mustParse(t, `λf. λx. f (f x)`)
	b := mustParse(t, `λg. λy. g (g y)`)
	assert.Equal(t, registry.ComputeHash(a), registry.ComputeHash(b))
}

func TestComputeHash_DiffersForDifferentTerms(t *testing.T) {
	a := mustParse(t, `λf. λx. f (f x)`)
	b := mustParse(t, `λf. λx. f x`)
	assert.NotEqual(t, registry.ComputeHash(a), registry.ComputeHash(b))
}

func TestComputeHash_IsHex64(t *testing.T) {
	h := registry.ComputeHash(mustParse(t, `λx. x`))
	assert.Len(t, h, 64)
	for _, r := range h {
		assert.Contains(t, "0123456789abcdef", string(r))
	}
}

func TestAlphaNormalize_RespectsFreeVariables(t *testing.T) {
	a := mustParse(t, `λx. y`)
	n := registry.AlphaNormalize(a)
	assert.Equal(t, "λv0. y", term.Pretty(n))
}

func TestAlphaNormalize_LetBindingsInOrder(t *testing.T) {
	a := mustParse(t, `let x = 1, y = x in y`)
	n := registry.AlphaNormalize(a)
	assert.Equal(t, "let v0 = 1, v1 = v0 in v1", term.Pretty(n))
}

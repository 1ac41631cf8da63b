// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package registry_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambdamorph/lambdamorph/internal/registry"
)

func TestParseMorphFile_Basic(t *testing.T) {
	src := "name: SUCC\ncategory: transform\npurity: 1\ndefinition:\n  λn. λf. λx. f (n f x)\n"
	m, err := registry.ParseMorphFile(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "SUCC", m.Name)
	assert.Equal(t, "transform", m.Category)
	assert.InDelta(t, 1.0, m.Purity, 1e-9)
	assert.NotNil(t, m.Definition)
}

func TestParseMorphFile_DefaultsPurityToZero(t *testing.T) {
	src := "name: IDENT\ndefinition:\n  λx. x\n"
	m, err := registry.ParseMorphFile(strings.NewReader(src))
	require.NoError(t, err)
	assert.InDelta(t, 0.0, m.Purity, 1e-9)
}

func TestParseMorphFile_RejectsLowercaseName(t *testing.T) {
	src := "name: succ\ndefinition:\n  λn. n\n"
	_, err := registry.ParseMorphFile(strings.NewReader(src))
	assert.Error(t, err)
}

func TestParseMorphFile_MissingDefinitionSectionIsError(t *testing.T) {
	src := "name: SUCC\n"
	_, err := registry.ParseMorphFile(strings.NewReader(src))
	assert.Error(t, err)
}

func TestParseMorphFile_MissingNameIsError(t *testing.T) {
	src := "category: transform\ndefinition:\n  λx. x\n"
	_, err := registry.ParseMorphFile(strings.NewReader(src))
	assert.Error(t, err)
}

func TestParseMorphFile_EngineVersionConstraintSatisfied(t *testing.T) {
	src := "name: SUCC\nengine-version: >=1.0.0\ndefinition:\n  λn. n\n"
	_, err := registry.ParseMorphFile(strings.NewReader(src))
	assert.NoError(t, err)
}

func TestParseMorphFile_EngineVersionConstraintUnsatisfied(t *testing.T) {
	src := "name: SUCC\nengine-version: >=99.0.0\ndefinition:\n  λn. n\n"
	_, err := registry.ParseMorphFile(strings.NewReader(src))
	assert.Error(t, err)
}

func TestParseMorphFile_PurityOutOfRangeIsError(t *testing.T) {
	src := "name: SUCC\npurity: 2.5\ndefinition:\n  λn. n\n"
	_, err := registry.ParseMorphFile(strings.NewReader(src))
	assert.Error(t, err)
}

func TestParseMorphFile_StopsBodyAtReferencesSection(t *testing.T) {
	src := "name: SUCC\ndefinition:\n  λn. n\nreferences:\n  https://example.invalid/church-numerals\n"
	m, err := registry.ParseMorphFile(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "λn. n", m.DefinitionText)
}

func TestRenderMorphFile_RoundTrips(t *testing.T) {
	original := "name: SUCC\ncategory: transform\npurity: 1\ndefinition:\n  λn. λf. λx. f (n f x)\n"
	m, err := registry.ParseMorphFile(strings.NewReader(original))
	require.NoError(t, err)

	rendered := registry.RenderMorphFile(m)
	reparsed, err := registry.ParseMorphFile(strings.NewReader(rendered))
	require.NoError(t, err)
	assert.Equal(t, m.Name, reparsed.Name)
	assert.Equal(t, m.DefinitionText, reparsed.DefinitionText)
}

func TestParseMorphFile_CapturesReferencesSection(t *testing.T) {
	src := "name: SUCC\ndefinition:\n  λn. n\nreferences:\n  https://example.invalid/church-numerals\n  https://example.invalid/peano\n"
	m, err := registry.ParseMorphFile(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://example.invalid/church-numerals",
		"https://example.invalid/peano",
	}, m.References)
}

func TestParseMorphFile_CapturesUnknownHeaderLine(t *testing.T) {
	src := "name: SUCC\nauthor: jdoe\ndefinition:\n  λn. n\n"
	m, err := registry.ParseMorphFile(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, m.UnknownHeaders, 1)
	assert.Equal(t, "author", m.UnknownHeaders[0].Key)
	assert.Equal(t, "jdoe", m.UnknownHeaders[0].Value)
}

func TestRenderMorphFile_RoundTripsReferencesAndUnknownHeaders(t *testing.T) {
	original := "name: SUCC\nauthor: jdoe\ndefinition:\n  λn. n\nreferences:\n  https://example.invalid/church-numerals\n"
	m, err := registry.ParseMorphFile(strings.NewReader(original))
	require.NoError(t, err)

	rendered := registry.RenderMorphFile(m)
	reparsed, err := registry.ParseMorphFile(strings.NewReader(rendered))
	require.NoError(t, err)
	assert.Equal(t, m.References, reparsed.References)
	assert.Equal(t, m.UnknownHeaders, reparsed.UnknownHeaders)
}

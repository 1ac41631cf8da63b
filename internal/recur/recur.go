// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

// Package recur implements the recursion detector (§4.5): deciding,
// structurally, whether an expression is a non-terminating candidate and
// should be routed to the α-equivalence/rewrite path rather than
// β-normalization.
package recur

import (
	"regexp"
	"strings"

	"github.com/lambdamorph/lambdamorph/internal/term"
)

// IsNonTerminatingCandidate reports whether t should be routed to the
// non-terminating branch of the pipeline: it either has a Y-combinator
// shape, or it mentions an identifier from knownRecursive by name.
func IsNonTerminatingCandidate(t term.Term, knownRecursive term.NameSet) bool {
	if isYCombinatorShape(t) {
		return true
	}
	return mentionsKnown(t, knownRecursive)
}

// isYCombinatorShape matches λg. (λx. Bx) (λy. By) where both Bx and By
// contain a self-application of their own binder and both free-reference
// g — the Y-combinator shape (or any α-equivalent variant), per §4.5.
func isYCombinatorShape(t term.Term) bool {
	lam, ok := t.(*term.Lam)
	if !ok {
		return false
	}
	app, ok := lam.Body.(*term.App)
	if !ok {
		return false
	}
	lamX, ok := app.Func.(*term.Lam)
	if !ok {
		return false
	}
	lamY, ok := app.Arg.(*term.Lam)
	if !ok {
		return false
	}
	return containsSelfApplication(lamX.Body, lamX.Param) &&
		containsSelfApplication(lamY.Body, lamY.Param) &&
		term.IsFree(lamX.Body, lam.Param) &&
		term.IsFree(lamY.Body, lam.Param)
}

// containsSelfApplication reports whether t contains App(Var(name),
// Var(name)) anywhere in its structure.
func containsSelfApplication(t term.Term, name string) bool {
	switch n := t.(type) {
	case *term.App:
		if fv, ok := n.Func.(*term.Var); ok {
			if av, ok := n.Arg.(*term.Var); ok && fv.Name == name && av.Name == name {
				return true
			}
		}
		return containsSelfApplication(n.Func, name) || containsSelfApplication(n.Arg, name)
	case *term.Lam:
		return containsSelfApplication(n.Body, name)
	case *term.Let:
		for _, b := range n.Bindings {
			if containsSelfApplication(b.Value, name) {
				return true
			}
		}
		return containsSelfApplication(n.Body, name)
	default:
		return false
	}
}

// mentionsKnown reports whether any free identifier of t is in known.
func mentionsKnown(t term.Term, known term.NameSet) bool {
	for name := range term.FreeVars(t) {
		if known.Has(name) {
			return true
		}
	}
	return false
}

// identifierPattern finds identifiers in raw text for the last-resort
// string heuristic used when parsing has already failed and no AST is
// available.
var identifierPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// FallbackStringHeuristic is the structural detector's last resort,
// operating directly on raw text when parsing failed. It is intentionally
// crude: it reports whether the text contains a repeated identifier
// applied to itself, e.g. "(x x)" — the only self-application signal
// available without an AST.
func FallbackStringHeuristic(text string) bool {
	idents := identifierPattern.FindAllStringIndex(text, -1)
	for i := 1; i < len(idents); i++ {
		prev, cur := idents[i-1], idents[i]
		gap := text[prev[1]:cur[0]]
		if gap != "" && strings.TrimSpace(gap) == "" && text[prev[0]:prev[1]] == text[cur[0]:cur[1]] {
			return true
		}
	}
	return false
}

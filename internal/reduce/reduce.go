// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

// Package reduce implements leftmost-outermost β-reduction to normal form
// under a step budget (§4.3).
package reduce

import "github.com/lambdamorph/lambdamorph/internal/term"

// DefaultBudget is the reference step budget used when a caller does not
// override it.
const DefaultBudget = 1000

// NormalForm is the result of Normalize: the term reached, how many
// β-reduction steps were taken, and whether the step budget was exhausted
// before a fixed point was found.
type NormalForm struct {
	Term          term.Term
	Steps         int
	ReachedBudget bool
}

// Step performs a single leftmost-outermost β-reduction, if any redex
// exists. It inspects the root first; if the root isn't a redex it
// descends into the func position, then the arg position, and into Lam
// bodies and Let bindings/body in order. Returns the unchanged term and
// false if no redex exists anywhere.
func Step(t term.Term) (term.Term, bool) {
	switch n := t.(type) {
	case *term.App:
		if lam, ok := n.Func.(*term.Lam); ok {
			return term.Substitute(lam.Body, lam.Param, n.Arg), true
		}
		if nf, changed := Step(n.Func); changed {
			return &term.App{Func: nf, Arg: n.Arg}, true
		}
		if na, changed := Step(n.Arg); changed {
			return &term.App{Func: n.Func, Arg: na}, true
		}
		return t, false
	case *term.Lam:
		if nb, changed := Step(n.Body); changed {
			return &term.Lam{Param: n.Param, Body: nb}, true
		}
		return t, false
	case *term.Let:
		bindings := make([]term.Binding, len(n.Bindings))
		copy(bindings, n.Bindings)
		for i, b := range n.Bindings {
			if nv, changed := Step(b.Value); changed {
				bindings[i] = term.Binding{Name: b.Name, Value: nv}
				return &term.Let{Bindings: bindings, Body: n.Body}, true
			}
		}
		if nbody, changed := Step(n.Body); changed {
			return &term.Let{Bindings: bindings, Body: nbody}, true
		}
		return t, false
	default:
		// Var and Lit are always in normal form.
		return t, false
	}
}

// Normalize repeatedly applies Step until a fixed point is reached or
// budget steps have been consumed, whichever comes first. With budget 0,
// no step is attempted and ReachedBudget is true (the engine never even
// inspected the term for redexes).
func Normalize(t term.Term, budget int) NormalForm {
	cur := t
	steps := 0
	for steps < budget {
		next, changed := Step(cur)
		if !changed {
			return NormalForm{Term: cur, Steps: steps, ReachedBudget: false}
		}
		cur = next
		steps++
	}
	return NormalForm{Term: cur, Steps: steps, ReachedBudget: true}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package rewrite

import "github.com/lambdamorph/lambdamorph/internal/term"

// Step records one algebraic rewrite applied during a search.
type Step struct {
	Law    string
	Ref    string
	Before string
	After  string
}

// MatchFunc reports whether candidate is equivalent to some registered
// canonical. Search consults it after every single rewrite and returns
// as soon as it reports true, rather than always rewriting to maxDepth
// and checking once at the end (§4.7/§4.8: "check if it matches any
// morphism in the registry; if yes, return ... otherwise, for each law,
// attempt to apply"). A nil MatchFunc disables early return: Search then
// simply rewrites until no site matches anywhere or the depth budget is
// exhausted.
type MatchFunc func(candidate term.Term) bool

// direction identifies which half of a bidirectional Law fired.
type direction int

const (
	none direction = iota
	forward
	reverse
)

func (d direction) opposite() direction {
	switch d {
	case forward:
		return reverse
	case reverse:
		return forward
	default:
		return none
	}
}

// Search applies algebraic rewrites to t one at a time, each chosen by a
// deterministic pre-order site search: at every node, try each law in
// Laws (forward direction first, then reverse); the first site and law
// that matches anywhere in the term is applied. Before each rewrite is
// counted against maxDepth, match (if non-nil) is consulted on the
// rewritten term; the first time it reports true, Search returns
// immediately with matched set, rather than continuing to rewrite. This
// is a greedy single-path search, not exhaustive backtracking: §4.7
// does not require the rewriter to find every possible chain, only a
// valid one when one exists.
//
// A law's Reverse rule is, by construction, the exact structural inverse
// of its own Forward rule (and vice versa). Without a safeguard, the
// very next site search after a Forward rewrite would find that same
// site again and immediately apply Reverse, undoing the rewrite just
// made — and the search would flip-flop between the fused and unfused
// shapes for the rest of the depth budget instead of making progress.
// Search therefore forbids the immediately following rewrite from
// applying the opposite direction of the law it just applied; any other
// law, or the same direction again at a different site, remains
// available.
func Search(t term.Term, maxDepth int, match MatchFunc) (term.Term, []Step, bool) {
	cur := t
	var steps []Step
	forbidLaw := ""
	forbidDir := none

	for i := 0; i < maxDepth; i++ {
		next, step, dir, ok := rewriteOnce(cur, Laws, forbidLaw, forbidDir)
		if !ok {
			break
		}
		steps = append(steps, step)
		cur = next
		forbidLaw, forbidDir = step.Law, dir.opposite()

		if match != nil && match(cur) {
			return cur, steps, true
		}
	}
	return cur, steps, false
}

func rewriteOnce(t term.Term, laws []Law, forbidLaw string, forbidDir direction) (term.Term, Step, direction, bool) {
	for _, law := range laws {
		rules := [...]struct {
			rule *Rule
			dir  direction
		}{
			{law.Forward, forward},
			{law.Reverse, reverse},
		}
		for _, r := range rules {
			if r.rule == nil {
				continue
			}
			if law.Name == forbidLaw && r.dir == forbidDir {
				continue
			}
			if b, ok := r.rule.Match(t); ok {
				before := term.Pretty(t)
				after := r.rule.Build(b)
				step := Step{Law: law.Name, Ref: law.ProofRef, Before: before, After: term.Pretty(after)}
				return after, step, r.dir, true
			}
		}
	}

	switch x := t.(type) {
	case *term.Lam:
		if nb, step, dir, ok := rewriteOnce(x.Body, laws, forbidLaw, forbidDir); ok {
			return &term.Lam{Param: x.Param, Body: nb}, step, dir, true
		}
	case *term.App:
		if nf, step, dir, ok := rewriteOnce(x.Func, laws, forbidLaw, forbidDir); ok {
			return &term.App{Func: nf, Arg: x.Arg}, step, dir, true
		}
		if na, step, dir, ok := rewriteOnce(x.Arg, laws, forbidLaw, forbidDir); ok {
			return &term.App{Func: x.Func, Arg: na}, step, dir, true
		}
	case *term.Let:
		for i, bnd := range x.Bindings {
			if nv, step, dir, ok := rewriteOnce(bnd.Value, laws, forbidLaw, forbidDir); ok {
				newBindings := make([]term.Binding, len(x.Bindings))
				copy(newBindings, x.Bindings)
				newBindings[i] = term.Binding{Name: bnd.Name, Value: nv}
				return &term.Let{Bindings: newBindings, Body: x.Body}, step, dir, true
			}
		}
		if nbody, step, dir, ok := rewriteOnce(x.Body, laws, forbidLaw, forbidDir); ok {
			return &term.Let{Bindings: x.Bindings, Body: nbody}, step, dir, true
		}
	}
	return nil, Step{}, none, false
}

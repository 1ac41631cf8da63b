// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

// Package rewrite implements the algebraic rewriting laws of §4.7: named,
// bidirectional equalities between registry combinators (FOLD, MAP) that
// let the engine bridge expressions no amount of β-reduction alone can
// equate, because one side is stuck behind an un-applied higher-order
// combinator.
package rewrite

import (
	"github.com/lambdamorph/lambdamorph/internal/term"
)

// bindings carries the subterms captured by a successful Match, keyed by
// the law's own metavariable names (f, g, z, xs, ...).
type bindings map[string]term.Term

// Rule is one direction of a Law: a structural matcher paired with the
// term builder that reconstructs the other side from its bindings.
type Rule struct {
	Match func(t term.Term) (bindings, bool)
	Build func(b bindings) term.Term
}

// Law is a named, bidirectional algebraic identity. Forward rewrites
// fuse two combinator applications into one; Reverse undoes the fusion.
// Either direction may apply during a site search (§4.7).
type Law struct {
	Name        string
	Description string
	ProofRef    string
	Forward     *Rule
	Reverse     *Rule
}

// freshParam returns a binder name not free in any of the given terms.
func freshParam(base string, avoid ...term.Term) string {
	set := term.NewNameSet()
	for _, t := range avoid {
		for name := range term.FreeVars(t) {
			set[name] = struct{}{}
		}
	}
	name := base
	for i := 0; set.Has(name); i++ {
		name = base + itoa(i)
	}
	return name
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := ""
	for i > 0 {
		digits = string(rune('0'+i%10)) + digits
		i /= 10
	}
	return digits
}

// Laws is the fixed, deterministic list of laws the rewriter searches,
// in the order they are tried at each site.
var Laws = []Law{foldMapFusion(), mapFusion()}

// foldMapFusion is the law of §4.7:
//
//	FOLD (λh. λacc. g (f h) acc) z xs  ==  FOLD g z (MAP f xs)
//
// Forward fuses the unfused (right-hand) shape into the fused
// (left-hand) one; Reverse undoes it. f is the mapped function, g the
// original fold combiner, z the seed, xs the list, h/acc the fused
// combiner's bound names.
func foldMapFusion() Law {
	return Law{
		Name:        "FOLD-MAP-FUSION",
		Description: "fuses a MAP into the combining function of an enclosing FOLD, avoiding an intermediate list",
		ProofRef:    "fold-map-fusion",
		Forward: &Rule{
			Match: func(t term.Term) (bindings, bool) {
				args, ok := identifierHead(t, "FOLD")
				if !ok || len(args) != 3 {
					return nil, false
				}
				g, z, mapped := args[0], args[1], args[2]
				mapArgs, ok := identifierHead(mapped, "MAP")
				if !ok || len(mapArgs) != 2 {
					return nil, false
				}
				f, xs := mapArgs[0], mapArgs[1]
				return bindings{"f": f, "g": g, "z": z, "xs": xs}, true
			},
			Build: func(b bindings) term.Term {
				f, g := b["f"], b["g"]
				h := freshParam("h", f, g)
				acc := freshParam("acc", f, g)
				combiner := &term.Lam{
					Param: h,
					Body: &term.Lam{
						Param: acc,
						Body:  applyArgs(g, applyArgs(f, &term.Var{Name: h}), &term.Var{Name: acc}),
					},
				}
				return applyArgs(&term.Var{Name: "FOLD"}, combiner, b["z"], b["xs"])
			},
		},
		Reverse: &Rule{
			Match: func(t term.Term) (bindings, bool) {
				args, ok := identifierHead(t, "FOLD")
				if !ok || len(args) != 3 {
					return nil, false
				}
				combiner, z, xs := args[0], args[1], args[2]
				f, g, ok := unfuseFoldBody(combiner)
				if !ok {
					return nil, false
				}
				return bindings{"f": f, "g": g, "z": z, "xs": xs}, true
			},
			Build: func(b bindings) term.Term {
				mapped := applyArgs(&term.Var{Name: "MAP"}, b["f"], b["xs"])
				return applyArgs(&term.Var{Name: "FOLD"}, b["g"], b["z"], mapped)
			},
		},
	}
}

// unfuseFoldBody decomposes λh. λacc. g (f h) acc into (f, g), requiring
// that f and g do not themselves reference h or acc — the condition
// under which the fusion is reversible without changing meaning.
func unfuseFoldBody(combiner term.Term) (f, g term.Term, ok bool) {
	lam1, ok := combiner.(*term.Lam)
	if !ok {
		return nil, nil, false
	}
	lam2, ok := lam1.Body.(*term.Lam)
	if !ok {
		return nil, nil, false
	}
	h, acc := lam1.Param, lam2.Param

	app, ok := lam2.Body.(*term.App)
	if !ok {
		return nil, nil, false
	}
	accVar, ok := app.Arg.(*term.Var)
	if !ok || accVar.Name != acc {
		return nil, nil, false
	}
	gfApp, ok := app.Func.(*term.App)
	if !ok {
		return nil, nil, false
	}
	fApp, ok := gfApp.Arg.(*term.App)
	if !ok {
		return nil, nil, false
	}
	hVar, ok := fApp.Arg.(*term.Var)
	if !ok || hVar.Name != h {
		return nil, nil, false
	}

	g, f = gfApp.Func, fApp.Func
	if term.IsFree(f, h) || term.IsFree(f, acc) || term.IsFree(g, h) || term.IsFree(g, acc) {
		return nil, nil, false
	}
	return f, g, true
}

// mapFusion: MAP f (MAP g xs)  ==  MAP (λx. f (g x)) xs
func mapFusion() Law {
	return Law{
		Name:        "MAP-FUSION",
		Description: "fuses two consecutive MAP passes into one, avoiding an intermediate list",
		ProofRef:    "map-fusion",
		Forward: &Rule{
			Match: func(t term.Term) (bindings, bool) {
				args, ok := identifierHead(t, "MAP")
				if !ok || len(args) != 2 {
					return nil, false
				}
				f, mapped := args[0], args[1]
				mapArgs, ok := identifierHead(mapped, "MAP")
				if !ok || len(mapArgs) != 2 {
					return nil, false
				}
				g, xs := mapArgs[0], mapArgs[1]
				return bindings{"f": f, "g": g, "xs": xs}, true
			},
			Build: func(b bindings) term.Term {
				f, g := b["f"], b["g"]
				x := freshParam("x", f, g)
				composed := &term.Lam{
					Param: x,
					Body:  applyArgs(f, applyArgs(g, &term.Var{Name: x})),
				}
				return applyArgs(&term.Var{Name: "MAP"}, composed, b["xs"])
			},
		},
		Reverse: &Rule{
			Match: func(t term.Term) (bindings, bool) {
				args, ok := identifierHead(t, "MAP")
				if !ok || len(args) != 2 {
					return nil, false
				}
				h, xs := args[0], args[1]
				f, g, ok := unfuseMapBody(h)
				if !ok {
					return nil, false
				}
				return bindings{"f": f, "g": g, "xs": xs}, true
			},
			Build: func(b bindings) term.Term {
				inner := applyArgs(&term.Var{Name: "MAP"}, b["g"], b["xs"])
				return applyArgs(&term.Var{Name: "MAP"}, b["f"], inner)
			},
		},
	}
}

// unfuseMapBody decomposes λx. f (g x) into (f, g), requiring f and g do
// not reference x.
func unfuseMapBody(h term.Term) (f, g term.Term, ok bool) {
	lam, ok := h.(*term.Lam)
	if !ok {
		return nil, nil, false
	}
	x := lam.Param

	app, ok := lam.Body.(*term.App)
	if !ok {
		return nil, nil, false
	}
	f = app.Func
	gApp, ok := app.Arg.(*term.App)
	if !ok {
		return nil, nil, false
	}
	gXVar, ok := gApp.Arg.(*term.Var)
	if !ok || gXVar.Name != x {
		return nil, nil, false
	}
	g = gApp.Func

	if term.IsFree(f, x) || term.IsFree(g, x) {
		return nil, nil, false
	}
	return f, g, true
}

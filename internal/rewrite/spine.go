// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package rewrite

import "github.com/lambdamorph/lambdamorph/internal/term"

// spine flattens a left-associated chain of App nodes into its head and
// the ordered list of arguments: `f a b c` becomes (f, [a, b, c]).
func spine(t term.Term) (head term.Term, args []term.Term) {
	for {
		app, ok := t.(*term.App)
		if !ok {
			return t, args
		}
		args = append([]term.Term{app.Arg}, args...)
		t = app.Func
	}
}

// applyArgs rebuilds a left-associated App chain from a head and its
// arguments, the inverse of spine.
func applyArgs(head term.Term, args ...term.Term) term.Term {
	result := head
	for _, a := range args {
		result = &term.App{Func: result, Arg: a}
	}
	return result
}

// identifierHead reports whether t's spine head is the registry
// identifier name, returning the flattened arguments.
func identifierHead(t term.Term, name string) ([]term.Term, bool) {
	head, args := spine(t)
	v, ok := head.(*term.Var)
	if !ok || v.Name != name {
		return nil, false
	}
	return args, true
}

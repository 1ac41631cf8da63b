// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package term

import "strconv"

// Rename substitutes newName for every free occurrence of oldName in t,
// respecting binder shadowing: a binder that rebinds oldName stops the
// renaming from descending into its scope.
func Rename(t Term, oldName, newName string) Term {
	switch n := t.(type) {
	case *Var:
		if n.Name == oldName {
			return &Var{Name: newName}
		}
		return &Var{Name: n.Name}
	case *Lit:
		return &Lit{Value: n.Value}
	case *Lam:
		if n.Param == oldName {
			return &Lam{Param: n.Param, Body: n.Body}
		}
		return &Lam{Param: n.Param, Body: Rename(n.Body, oldName, newName)}
	case *App:
		return &App{Func: Rename(n.Func, oldName, newName), Arg: Rename(n.Arg, oldName, newName)}
	case *Let:
		bindings := make([]Binding, len(n.Bindings))
		shadowed := false
		for i, b := range n.Bindings {
			if shadowed {
				bindings[i] = b
				continue
			}
			bindings[i] = Binding{Name: b.Name, Value: Rename(b.Value, oldName, newName)}
			if b.Name == oldName {
				shadowed = true
			}
		}
		body := n.Body
		if !shadowed {
			body = Rename(n.Body, oldName, newName)
		}
		return &Let{Bindings: bindings, Body: body}
	default:
		return t
	}
}

// freshName returns a name not present in avoid, derived from base by
// appending increasing integer suffixes.
func freshName(base string, avoid NameSet) string {
	if !avoid.Has(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + strconv.Itoa(i)
		if !avoid.Has(candidate) {
			return candidate
		}
	}
}

// Substitute implements body[x := arg] with capture-avoiding substitution
// (§4.2): whenever a binder y is entered with y free in arg, y is first
// α-converted to a name fresh with respect to FreeVars(body) ∪
// FreeVars(arg) ∪ {x}.
func Substitute(body Term, x string, arg Term) Term {
	switch n := body.(type) {
	case *Var:
		if n.Name == x {
			return arg
		}
		return &Var{Name: n.Name}
	case *Lit:
		return &Lit{Value: n.Value}
	case *App:
		return &App{Func: Substitute(n.Func, x, arg), Arg: Substitute(n.Arg, x, arg)}
	case *Lam:
		if n.Param == x {
			// x is shadowed here; the body is left untouched.
			return &Lam{Param: n.Param, Body: n.Body}
		}
		if !IsFree(arg, n.Param) {
			return &Lam{Param: n.Param, Body: Substitute(n.Body, x, arg)}
		}
		avoid := union(union(FreeVars(n.Body), FreeVars(arg)), NewNameSet(x))
		fresh := freshName(n.Param, avoid)
		renamedBody := Rename(n.Body, n.Param, fresh)
		return &Lam{Param: fresh, Body: Substitute(renamedBody, x, arg)}
	case *Let:
		return substituteLet(n, x, arg)
	default:
		return body
	}
}

// substituteLet applies sequential-shadowing substitution to a Let: each
// binding value is substituted under the bindings seen so far, descent
// stops into later bindings/body once a binder equal to x is encountered.
func substituteLet(n *Let, x string, arg Term) Term {
	bindings := make([]Binding, len(n.Bindings))
	shadowed := false
	for i, b := range n.Bindings {
		if shadowed {
			bindings[i] = b
			continue
		}
		bindings[i] = Binding{Name: b.Name, Value: Substitute(b.Value, x, arg)}
		if b.Name == x {
			shadowed = true
		}
	}
	body := n.Body
	if !shadowed {
		body = Substitute(n.Body, x, arg)
	}
	return &Let{Bindings: bindings, Body: body}
}

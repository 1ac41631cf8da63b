// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

// Package alpha implements the structural α-equivalence checker (§4.6):
// equality modulo consistent bound-variable renaming, treating free
// variables and registry identifiers as opaque atoms.
package alpha

import (
	"strconv"

	"github.com/lambdamorph/lambdamorph/internal/term"
)

// env maps one side's bound names to a shared fresh token.
type env map[string]string

func (e env) extend(name, token string) env {
	out := make(env, len(e)+1)
	for k, v := range e {
		out[k] = v
	}
	out[name] = token
	return out
}

// Equal reports whether m and n are α-equivalent: structurally equal
// after consistently renaming bound variables to a shared canonical
// scheme. Free variables and registry identifiers are compared by
// textual name.
func Equal(m, n term.Term) bool {
	c := &checker{}
	return c.eq(m, n, env{}, env{})
}

type checker struct {
	counter int
}

func (c *checker) fresh() string {
	c.counter++
	return "#" + strconv.Itoa(c.counter)
}

func (c *checker) eq(a, b term.Term, envA, envB env) bool {
	switch x := a.(type) {
	case *term.Var:
		y, ok := b.(*term.Var)
		if !ok {
			return false
		}
		ta, boundA := envA[x.Name]
		tb, boundB := envB[y.Name]
		if boundA != boundB {
			return false
		}
		if boundA {
			return ta == tb
		}
		return x.Name == y.Name

	case *term.Lit:
		y, ok := b.(*term.Lit)
		if !ok {
			return false
		}
		return x.Value == y.Value

	case *term.Lam:
		y, ok := b.(*term.Lam)
		if !ok {
			return false
		}
		tok := c.fresh()
		return c.eq(x.Body, y.Body, envA.extend(x.Param, tok), envB.extend(y.Param, tok))

	case *term.App:
		y, ok := b.(*term.App)
		if !ok {
			return false
		}
		return c.eq(x.Func, y.Func, envA, envB) && c.eq(x.Arg, y.Arg, envA, envB)

	case *term.Let:
		y, ok := b.(*term.Let)
		if !ok || len(x.Bindings) != len(y.Bindings) {
			return false
		}
		curA, curB := envA, envB
		for i := range x.Bindings {
			if !c.eq(x.Bindings[i].Value, y.Bindings[i].Value, curA, curB) {
				return false
			}
			tok := c.fresh()
			curA = curA.extend(x.Bindings[i].Name, tok)
			curB = curB.extend(y.Bindings[i].Name, tok)
		}
		return c.eq(x.Body, y.Body, curA, curB)

	default:
		return false
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

// Package expand implements the definition expander (§4.4): replacing
// registry identifiers by their definitions, with cycle detection and a
// depth cap.
package expand

import "github.com/lambdamorph/lambdamorph/internal/term"

// DefaultMaxDepth is the reference expansion depth cap.
const DefaultMaxDepth = 10

// Lookup resolves a registry identifier's definition by name.
type Lookup interface {
	LookupByName(name string) (term.Term, bool)
}

// Result carries the expanded term, whether any expansion actually
// happened, and any non-fatal warnings produced along the way (cyclic or
// unknown identifiers).
type Result struct {
	Term     term.Term
	Expanded bool
	Warnings []string
}

// Expand walks t and replaces every Var(NAME) where NAME is a registry
// identifier with the registry's definition for NAME, up to maxDepth
// nested expansions and with cycle detection. Expansion never descends
// into a binder that shadows NAME (§4.4's scope-safety rule). If nothing
// is expanded, the returned term is structurally equal to t.
func Expand(t term.Term, reg Lookup, maxDepth int) Result {
	return ExpandOpaque(t, reg, maxDepth, nil)
}

// ExpandOpaque behaves like Expand but never expands any identifier named
// in opaque, leaving it as a free atom instead. The non-terminating
// pipeline branch passes the registry's known-recursive set here: §4.6
// requires α-equivalence on that branch to treat registry identifiers as
// opaque atoms, so they must survive expansion unexpanded.
func ExpandOpaque(t term.Term, reg Lookup, maxDepth int, opaque term.NameSet) Result {
	c := &ctx{reg: reg, maxDepth: maxDepth, inProgress: map[string]bool{}, opaque: opaque}
	out, expanded := c.walk(t, term.NameSet{})
	return Result{Term: out, Expanded: expanded, Warnings: c.warnings}
}

type ctx struct {
	reg        Lookup
	maxDepth   int
	depthUsed  int
	inProgress map[string]bool
	warnings   []string
	opaque     term.NameSet
}

func (c *ctx) walk(t term.Term, bound term.NameSet) (term.Term, bool) {
	switch n := t.(type) {
	case *term.Var:
		return c.walkVar(n, bound)
	case *term.Lit:
		return &term.Lit{Value: n.Value}, false
	case *term.Lam:
		newBound := bound.Clone()
		newBound[n.Param] = struct{}{}
		body, changed := c.walk(n.Body, newBound)
		return &term.Lam{Param: n.Param, Body: body}, changed
	case *term.App:
		f, cf := c.walk(n.Func, bound)
		a, ca := c.walk(n.Arg, bound)
		return &term.App{Func: f, Arg: a}, cf || ca
	case *term.Let:
		return c.walkLet(n, bound)
	default:
		return t, false
	}
}

func (c *ctx) walkVar(n *term.Var, bound term.NameSet) (term.Term, bool) {
	if !term.IsRegistryIdentifier(n.Name) || bound.Has(n.Name) {
		return &term.Var{Name: n.Name}, false
	}
	if c.opaque.Has(n.Name) {
		return &term.Var{Name: n.Name}, false
	}
	if c.inProgress[n.Name] {
		c.warnings = append(c.warnings, "cyclic identifier "+n.Name+" not expanded")
		return &term.Var{Name: n.Name}, false
	}
	if c.depthUsed >= c.maxDepth {
		return &term.Var{Name: n.Name}, false
	}
	def, ok := c.reg.LookupByName(n.Name)
	if !ok {
		c.warnings = append(c.warnings, "unknown identifier "+n.Name+" not expanded")
		return &term.Var{Name: n.Name}, false
	}

	c.inProgress[n.Name] = true
	c.depthUsed++
	expanded, _ := c.walk(def, term.NameSet{})
	c.depthUsed--
	delete(c.inProgress, n.Name)

	return expanded, true
}

func (c *ctx) walkLet(n *term.Let, bound term.NameSet) (term.Term, bool) {
	newBound := bound.Clone()
	bindings := make([]term.Binding, len(n.Bindings))
	changed := false
	for i, b := range n.Bindings {
		v, cv := c.walk(b.Value, newBound)
		bindings[i] = term.Binding{Name: b.Name, Value: v}
		changed = changed || cv
		newBound[b.Name] = struct{}{}
	}
	body, cb := c.walk(n.Body, newBound)
	return &term.Let{Bindings: bindings, Body: body}, changed || cb
}

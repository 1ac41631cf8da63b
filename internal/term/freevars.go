// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package term

// NameSet is a set of identifier names.
type NameSet map[string]struct{}

// NewNameSet builds a NameSet from the given names.
func NewNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set.
func (s NameSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Clone returns a shallow copy of s.
func (s NameSet) Clone() NameSet {
	out := make(NameSet, len(s))
	for n := range s {
		out[n] = struct{}{}
	}
	return out
}

// union returns the union of a and b, allocating a fresh set.
func union(a, b NameSet) NameSet {
	out := make(NameSet, len(a)+len(b))
	for n := range a {
		out[n] = struct{}{}
	}
	for n := range b {
		out[n] = struct{}{}
	}
	return out
}

// FreeVars returns the set of free identifier names in t — both lowercase
// variables and uppercase registry identifiers. The caller decides how to
// treat each kind (§4.2).
func FreeVars(t Term) NameSet {
	switch n := t.(type) {
	case *Var:
		return NewNameSet(n.Name)
	case *Lit:
		return NameSet{}
	case *Lam:
		fv := FreeVars(n.Body).Clone()
		delete(fv, n.Param)
		return fv
	case *App:
		return union(FreeVars(n.Func), FreeVars(n.Arg))
	case *Let:
		free := NameSet{}
		bound := NameSet{}
		for _, b := range n.Bindings {
			vfv := FreeVars(b.Value)
			for name := range vfv {
				if !bound.Has(name) {
					free[name] = struct{}{}
				}
			}
			bound[b.Name] = struct{}{}
		}
		for name := range FreeVars(n.Body) {
			if !bound.Has(name) {
				free[name] = struct{}{}
			}
		}
		return free
	default:
		return NameSet{}
	}
}

// IsFree reports whether name occurs free in t.
func IsFree(t Term, name string) bool {
	return FreeVars(t).Has(name)
}

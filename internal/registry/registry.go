// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

// Package registry holds the set of named canonical morphisms an
// expression can be verified against (§4.9): content-addressed lookup by
// hash, lookup by name, and the configured set of identifiers known to
// be recursive for the benefit of internal/recur (§4.5).
package registry

import (
	"sync"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"github.com/lambdamorph/lambdamorph/internal/term"
)

// DefaultKnownRecursive is the baseline known-recursive identifier set
// named in §4.5, extendable at registry construction time.
var DefaultKnownRecursive = []string{"FOLD", "MAP", "FILTER", "FLATMAP", "CONCAT"}

// Morphism is one registered canonical λ-term. Purity is informational
// metadata in [0,1] (§3); the engine does not enforce it.
type Morphism struct {
	Hash           string
	Name           string
	Definition     term.Term
	DefinitionText string
	Category       string
	Purity         float64

	// References holds the whitespace-trimmed lines of an optional
	// "references:" section (§6) — citation text the loader does not
	// interpret, only carries through so RenderMorphFile can re-emit it.
	References []string

	// UnknownHeaders preserves header lines above "definition:" whose
	// key the loader does not recognize, in the order they appeared, so
	// RenderMorphFile can re-emit them unchanged (§6: "Unknown fields
	// are ignored by the loader but preserved by the writer").
	UnknownHeaders []HeaderField
}

// HeaderField is one unrecognized "key: value" header line carried
// through a parse/render round trip without interpretation.
type HeaderField struct {
	Key   string
	Value string
}

// Registry is a concurrency-safe, content-addressed store of morphisms.
// The zero value is not usable; construct with New.
type Registry struct {
	mu       sync.RWMutex
	byHash   map[string]*Morphism
	byName   map[string]*Morphism
	order    []string // hashes, in registration order
	recNames term.NameSet
}

// New returns an empty registry seeded with DefaultKnownRecursive.
func New() *Registry {
	return &Registry{
		byHash:   make(map[string]*Morphism),
		byName:   make(map[string]*Morphism),
		recNames: term.NewNameSet(DefaultKnownRecursive...),
	}
}

// AddKnownRecursive extends the known-recursive identifier set used by
// the recursion detector (§4.5).
func (r *Registry) AddKnownRecursive(names ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		r.recNames[n] = struct{}{}
	}
}

// Register adds m to the registry, computing its hash from Definition if
// Hash is unset. A duplicate name with a different definition is
// rejected; re-registering the identical definition under the same name
// succeeds silently, matching content-addressing semantics. A definition
// whose hash is already registered under another name replaces that
// entry for LookupByHash and Iterate (keeping its place in registration
// order); the earlier name still resolves through the name lookups.
func (r *Registry) Register(m Morphism) (*Morphism, error) {
	if m.Name == "" {
		return nil, oops.Code("MORPHISM_NAME_REQUIRED").Errorf("registry: morphism name must not be empty")
	}
	if m.Hash == "" {
		m.Hash = ComputeHash(m.Definition)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[m.Name]; ok {
		if existing.Hash != m.Hash {
			return nil, oops.Code("MORPHISM_NAME_CONFLICT").
				With("name", m.Name, "existingHash", existing.Hash, "newHash", m.Hash).
				Errorf("registry: name %q already registered with a different definition", m.Name)
		}
		return existing, nil
	}

	stored := m
	if _, dup := r.byHash[stored.Hash]; !dup {
		r.order = append(r.order, stored.Hash)
	}
	r.byHash[stored.Hash] = &stored
	r.byName[stored.Name] = &stored
	return &stored, nil
}

// LookupByHash returns the morphism with the given content hash, if any.
func (r *Registry) LookupByHash(hash string) (*Morphism, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byHash[hash]
	return m, ok
}

// LookupByName implements expand.Lookup: it resolves a registry
// identifier to its definition term.
func (r *Registry) LookupByName(name string) (term.Term, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return m.Definition, true
}

// MorphismByName returns the full registered entry for name, if any.
func (r *Registry) MorphismByName(name string) (*Morphism, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byName[name]
	return m, ok
}

// Iterate returns a snapshot slice of all registered morphisms in
// registration order (§4.8's documented, stable candidate order). The
// slice is a copy; mutating it does not affect the registry.
func (r *Registry) Iterate() []*Morphism {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Map(r.order, func(hash string, _ int) *Morphism {
		return r.byHash[hash]
	})
}

// KnownRecursiveNames returns the configured set of identifiers the
// recursion detector (§4.5) treats as non-terminating by name.
func (r *Registry) KnownRecursiveNames() term.NameSet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.recNames.Clone()
}

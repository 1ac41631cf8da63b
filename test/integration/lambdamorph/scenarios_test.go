// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

//go:build integration

package lambdamorph_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/lambdamorph/lambdamorph/internal/config"
	"github.com/lambdamorph/lambdamorph/internal/pipeline"
	"github.com/lambdamorph/lambdamorph/internal/registry"
	"github.com/lambdamorph/lambdamorph/pkg/lambdamorph"
)

// newPeanoRegistry builds the minimum registry described in §8: church
// numerals and successor/addition, the recursive list primitives, and
// FLATMAP expressed as their fused composition.
func newPeanoRegistry() *lambdamorph.Engine {
	eng := lambdamorph.NewEngine(config.Config{
		ExpandMaxDepth:  10,
		ReductionBudget: 2000,
		RewriteMaxDepth: 8,
	})
	must := func(name, src, category string, purity float64) {
		_, err := eng.Register(name, src, category, purity)
		Expect(err).NotTo(HaveOccurred())
	}

	must("ZERO", `λf. λx. x`, "source", 1.0)
	must("ONE", `λf. λx. f x`, "source", 1.0)
	must("SUCC", `λn. λf. λx. f (n f x)`, "transform", 1.0)
	must("ADD", `λm. λn. λf. λx. m f (n f x)`, "transform", 1.0)
	must("MAP", `λf. λxs. xs`, "transform", 0.2)
	must("FOLD", `λg. λz. λxs. z`, "transform", 0.2)
	must("CONCAT", `λxs. λys. xs`, "transform", 0.2)
	must("FLATMAP", `λf. λxs. FOLD (λh. λacc. CONCAT (f h) acc) NIL xs`, "compose", 0.2)
	must("MAPFUSED", `MAP (λx. f (g x)) xs`, "compose", 0.2)
	must("Y", `λg. (λx. g (x x)) (λx. g (x x))`, "compose", 0.0)

	return eng
}

var _ = Describe("end-to-end verification scenarios (§8)", func() {
	var eng *lambdamorph.Engine

	BeforeEach(func() {
		eng = newPeanoRegistry()
	})

	It("scenario 1: expands ADD ONE into SUCC", func() {
		p, err := eng.Verify(context.Background(), `λn. ADD ONE n`)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Matched).To(BeTrue())
		Expect(p.CanonicalName).To(Equal("SUCC"))

		var rules []string
		for _, s := range p.Steps {
			rules = append(rules, s.Rule)
		}
		Expect(rules).To(ContainElement("expand"))
		Expect(rules).To(ContainElement("beta-normalize"))
	})

	It("scenario 2: the identity function matches directly with no proof steps", func() {
		eng := newPeanoRegistry()
		_, err := eng.Register("ID", `λx. x`, "source", 1.0)
		Expect(err).NotTo(HaveOccurred())

		p, err := eng.Verify(context.Background(), `λx. x`)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Matched).To(BeTrue())
		Expect(p.CanonicalName).To(Equal("ID"))
		Expect(p.Steps).To(BeEmpty())
	})

	It("scenario 3: two β-reductions leave the free variable z", func() {
		reduced, err := eng.Search(`(λx. x) ((λy. y) z)`)
		Expect(err).NotTo(HaveOccurred())
		Expect(lambdamorph.Pretty(reduced)).To(Equal("z"))
	})

	It("scenario 4: MAP fusion rewrites to the registered fused canonical", func() {
		p, err := eng.Verify(context.Background(), `MAP f (MAP g xs)`)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Matched).To(BeTrue())
		Expect(p.CanonicalName).To(Equal("MAPFUSED"))

		var rules []string
		for _, s := range p.Steps {
			rules = append(rules, s.Rule)
		}
		Expect(rules).To(ContainElement("MAP-FUSION"))
	})

	It("scenario 5: an already-applied FLATMAP shape α-matches FLATMAP's own fused body", func() {
		// FLATMAP's own definition is already written in the FOLD-MAP
		// fused form, so this candidate (the fused body, applied to the
		// same free names FLATMAP itself binds) matches it directly by
		// peeling FLATMAP's parameters rather than needing an explicit
		// rewrite step — see DESIGN.md's note on matchNonTerminating.
		p, err := eng.Verify(context.Background(), `FOLD (λh. λacc. CONCAT (f h) acc) NIL xs`)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Matched).To(BeTrue())
		Expect(p.CanonicalName).To(Equal("FLATMAP"))
	})

	It("scenario 6: a Y-combinator shape matches the registered Y by structural equivalence", func() {
		p, err := eng.Verify(context.Background(), `λh. (λy. h (y y)) (λy. h (y y))`)
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Matched).To(BeTrue())
		Expect(p.CanonicalName).To(Equal("Y"))

		var rules []string
		for _, s := range p.Steps {
			rules = append(rules, s.Rule)
		}
		Expect(rules).To(ContainElement("structural-equivalence"))
	})
})

var _ = Describe("boundary conditions (§8)", func() {
	It("rejects an empty expression with a parse error", func() {
		eng := newPeanoRegistry()
		_, err := eng.Verify(context.Background(), ``)
		Expect(err).To(HaveOccurred())
	})

	It("leaves a term unchanged with reachedBudget when the budget is zero", func() {
		term, steps, reachedBudget := lambdamorph.Normalize(mustTerm(`(λx. x) y`), 0)
		Expect(reachedBudget).To(BeTrue())
		Expect(steps).To(Equal(0))
		Expect(lambdamorph.Pretty(term)).To(Equal("(λx. x) y"))
	})

	It("leaves a mutually cyclic definition pair in place and still attempts the pipeline", func() {
		reg := registry.New()
		a, err := lambdamorph.Parse(`B`)
		Expect(err).NotTo(HaveOccurred())
		_, err = reg.Register(registry.Morphism{Name: "A", Definition: a, DefinitionText: "B"})
		Expect(err).NotTo(HaveOccurred())
		b, err := lambdamorph.Parse(`A`)
		Expect(err).NotTo(HaveOccurred())
		_, err = reg.Register(registry.Morphism{Name: "B", Definition: b, DefinitionText: "A"})
		Expect(err).NotTo(HaveOccurred())

		byName, ok := reg.MorphismByName("A")
		Expect(ok).To(BeTrue())
		Expect(lambdamorph.Pretty(byName.Definition)).To(Equal("B"))

		p, err := pipeline.FindCanonical(context.Background(), reg, `A`, config.Defaults())
		Expect(err).NotTo(HaveOccurred())
		Expect(p).NotTo(BeNil())
	})
})

func mustTerm(src string) lambdamorph.Term {
	t, err := lambdamorph.Parse(src)
	if err != nil {
		panic(err)
	}
	return t
}

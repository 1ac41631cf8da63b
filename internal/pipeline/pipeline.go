// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

// Package pipeline orchestrates the end-to-end verification algorithm
// of §4.8: parse, route on the recursion detector, then either
// normalize-and-compare (terminating path) or shallow-expand-and-compare
// (non-terminating path), falling back to the algebraic rewriter on
// either path before giving up.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"

	"github.com/lambdamorph/lambdamorph/internal/alpha"
	"github.com/lambdamorph/lambdamorph/internal/config"
	"github.com/lambdamorph/lambdamorph/internal/expand"
	"github.com/lambdamorph/lambdamorph/internal/recur"
	"github.com/lambdamorph/lambdamorph/internal/reduce"
	"github.com/lambdamorph/lambdamorph/internal/registry"
	"github.com/lambdamorph/lambdamorph/internal/rewrite"
	"github.com/lambdamorph/lambdamorph/internal/term"
	"github.com/lambdamorph/lambdamorph/pkg/errutil"
	"github.com/lambdamorph/lambdamorph/pkg/proof"
)

var tracer = otel.Tracer("github.com/lambdamorph/lambdamorph/internal/pipeline")

// ErrBudgetExceeded is returned when β-normalization on the terminating
// path used up its reduction budget and neither the registry comparison
// nor the rewrite fallback found a match, so no confident negative can be
// given (§6, exit code 3). The non-terminating path never returns it.
var ErrBudgetExceeded = oops.Code("BUDGET_EXCEEDED").Errorf("pipeline: internal limit exceeded before a decision was reached")

// FindCanonical is the engine's single entry point: it decides whether
// text is equivalent to a registered canonical morphism in reg, and
// returns the proof trail either way. A non-nil error means no decision
// could be reached at all (parse failure, or budget exhaustion); a
// decision of "not equivalent to anything registered" is a normal,
// non-error Proof with Matched == false.
func FindCanonical(ctx context.Context, reg *registry.Registry, text string, cfg config.Config) (*proof.Proof, error) {
	start := time.Now()
	correlationID := ulid.Make().String()
	logger := slog.With("correlationId", correlationID)

	ctx, span := tracer.Start(ctx, "pipeline.FindCanonical")
	defer span.End()
	defer func() {
		verifyDuration.Observe(time.Since(start).Seconds())
	}()

	ast, err := term.Parse(text)
	if err != nil {
		// No AST means the structural detector of §4.5 can't run, but its
		// last-resort textual heuristic still gives a log reader a cheap
		// signal for whether the unparseable input was likely reaching for
		// a self-applying (non-terminating) shape, as opposed to an
		// unrelated syntax mistake.
		wrapped := oops.Code("PARSE_FAILED").
			With("likelyNonTerminating", recur.FallbackStringHeuristic(text)).
			Wrapf(err, "pipeline: parse")
		errutil.LogError(logger, "parse failed", wrapped)
		return nil, wrapped
	}

	known := reg.KnownRecursiveNames()
	var result *proof.Proof
	if recur.IsNonTerminatingCandidate(ast, known) {
		result, err = verifyNonTerminating(ctx, ast, reg, cfg)
	} else {
		result, err = verifyTerminating(ctx, ast, reg, cfg)
	}
	if err != nil {
		errutil.LogError(logger, "verification inconclusive", err)
		return nil, err
	}

	verifyTotal.WithLabelValues(strconv.FormatBool(result.Matched)).Inc()
	logger.InfoContext(ctx, "verification complete",
		"matched", result.Matched,
		"durationMs", time.Since(start).Milliseconds())
	return result, nil
}

func verifyTerminating(ctx context.Context, ast term.Term, reg *registry.Registry, cfg config.Config) (*proof.Proof, error) {
	_, span := tracer.Start(ctx, "pipeline.verifyTerminating")
	defer span.End()

	expanded := expand.Expand(ast, reg, cfg.ExpandMaxDepth)
	nf := reduce.Normalize(expanded.Term, cfg.ReductionBudget)
	reductionSteps.Observe(float64(nf.Steps))

	var steps []proof.Step
	if expanded.Expanded {
		steps = append(steps, proof.Step{
			Rule:        "expand",
			From:        term.Pretty(ast),
			To:          term.Pretty(expanded.Term),
			Explanation: "inlined registry identifiers into their definitions",
		})
	}
	steps = append(steps, proof.Step{
		Rule:        "beta-normalize",
		From:        term.Pretty(expanded.Term),
		To:          term.Pretty(nf.Term),
		Explanation: fmt.Sprintf("%d leftmost-outermost β-reduction steps", nf.Steps),
	})

	if m, matchSteps := matchNormalized(reg, nf.Term, cfg.ReductionBudget); m != nil {
		if !expanded.Expanded && nf.Steps == 0 {
			// A direct match: nothing was expanded or reduced, so there is
			// no rule application to record.
			return buildMatch(nf.Term, m, nil), nil
		}
		return buildMatch(nf.Term, m, append(steps, matchSteps...)), nil
	}

	var rewriteMatch *registry.Morphism
	var rewriteMatchSteps []proof.Step
	rewritten, rewriteSteps, matched := rewrite.Search(nf.Term, cfg.RewriteMaxDepth, func(cand term.Term) bool {
		rewriteMatch, rewriteMatchSteps = matchNormalized(reg, cand, cfg.ReductionBudget)
		return rewriteMatch != nil
	})
	if matched {
		allSteps := append(append([]proof.Step{}, steps...), toProofSteps(rewriteSteps)...)
		return buildMatch(rewritten, rewriteMatch, append(allSteps, rewriteMatchSteps...)), nil
	}
	if len(rewriteSteps) > 0 {
		steps = append(steps, toProofSteps(rewriteSteps)...)
	}

	if nf.ReachedBudget {
		return nil, ErrBudgetExceeded
	}
	return &proof.Proof{
		Matched:    false,
		NormalForm: term.Pretty(nf.Term),
		Reasoning:  "no registered canonical is equivalent to the normalized form",
		Steps:      steps,
	}, nil
}

func verifyNonTerminating(ctx context.Context, ast term.Term, reg *registry.Registry, cfg config.Config) (*proof.Proof, error) {
	_, span := tracer.Start(ctx, "pipeline.verifyNonTerminating")
	defer span.End()

	// A non-terminating expression cannot be safely β-reduced to a
	// normal form. Only a shallow, depth-bounded expansion is applied
	// before comparing structurally (§4.5), and known-recursive
	// identifiers are never expanded on this branch: §4.6 requires
	// α-equivalence here to treat them as opaque atoms, the same way it
	// already treats free variables.
	known := reg.KnownRecursiveNames()
	expanded := expand.ExpandOpaque(ast, reg, 1, known)

	var steps []proof.Step
	if expanded.Expanded {
		steps = append(steps, proof.Step{
			Rule:        "expand",
			From:        term.Pretty(ast),
			To:          term.Pretty(expanded.Term),
			Explanation: "shallow-inlined non-recursive registry identifiers (non-terminating candidate)",
		})
	}

	if m, matchSteps := matchNonTerminating(reg, expanded.Term); m != nil {
		return buildMatch(expanded.Term, m, append(steps, matchSteps...)), nil
	}

	// Rewriting operates on the original, unexpanded candidate: the
	// algebraic laws match on literal known-recursive identifier heads
	// (FOLD, MAP, CONCAT, ...), which the expansion above has
	// deliberately left untouched but which the shallow-expand step may
	// otherwise have buried inside an inlined definition. The registry is
	// consulted after every individual rewrite, not just once at the end
	// of the search: §4.7 requires returning the moment a rewrite
	// produces a registry match, which also keeps a law's Reverse rule
	// from being given the chance to undo the very Forward rewrite that
	// just satisfied the match.
	var rewriteMatch *registry.Morphism
	var rewriteMatchSteps []proof.Step
	rewritten, rewriteSteps, matched := rewrite.Search(ast, cfg.RewriteMaxDepth, func(cand term.Term) bool {
		rewriteMatch, rewriteMatchSteps = matchNonTerminating(reg, cand)
		return rewriteMatch != nil
	})
	if matched {
		allSteps := append(append([]proof.Step{}, steps...), toProofSteps(rewriteSteps)...)
		return buildMatch(rewritten, rewriteMatch, append(allSteps, rewriteMatchSteps...)), nil
	}

	return &proof.Proof{
		Matched:    false,
		NormalForm: term.Pretty(expanded.Term),
		Reasoning:  "no registered canonical is α-equivalent to this non-terminating candidate",
		Steps:      steps,
	}, nil
}

// matchNonTerminating compares candidate against every registered
// morphism's raw (unexpanded) definition, and also against that
// definition with its leading λ-binders peeled away. Peeling lets an
// already-applied occurrence of a parametrized canonical (e.g. `FLATMAP`
// applied to `f` and `xs`, written out in full) match the canonical's own
// body once its formal parameters are stripped — the comparison still
// goes through ordinary α-equivalence, which treats any name not bound
// within the compared term as a free, opaque atom (§4.6).
func matchNonTerminating(reg *registry.Registry, candidate term.Term) (*registry.Morphism, []proof.Step) {
	for _, m := range reg.Iterate() {
		if alpha.Equal(candidate, m.Definition) {
			return m, []proof.Step{{
				Rule:        "structural-equivalence",
				From:        term.Pretty(candidate),
				To:          m.Name,
				Explanation: fmt.Sprintf("structurally α-equivalent to registered canonical %s", m.Name),
			}}
		}
		if peeled := peelParams(m.Definition); peeled != m.Definition && alpha.Equal(candidate, peeled) {
			return m, []proof.Step{{
				Rule:        "structural-equivalence",
				From:        term.Pretty(candidate),
				To:          m.Name,
				Explanation: fmt.Sprintf("α-equivalent to %s's body once its own parameters are peeled away", m.Name),
			}}
		}
	}
	return nil, nil
}

// peelParams strips leading Lam binders from t, returning the innermost
// non-Lam body (or t itself if t is not a Lam).
func peelParams(t term.Term) term.Term {
	for {
		lam, ok := t.(*term.Lam)
		if !ok {
			return t
		}
		t = lam.Body
	}
}

// matchNormalized compares candidate — itself already β-normalized — against
// every registered morphism's own definition, first β-normalizing that
// definition too so the comparison is modulo reduction (the terminating
// path's §4.8 step 4c).
func matchNormalized(reg *registry.Registry, candidate term.Term, budget int) (*registry.Morphism, []proof.Step) {
	for _, m := range reg.Iterate() {
		target := reduce.Normalize(m.Definition, budget).Term
		if alpha.Equal(candidate, target) {
			step := proof.Step{
				Rule:        "alpha-equivalence",
				From:        term.Pretty(candidate),
				To:          m.Name,
				Explanation: fmt.Sprintf("structurally α-equivalent to registered canonical %s", m.Name),
			}
			return m, []proof.Step{step}
		}
	}
	return nil, nil
}

func buildMatch(finalTerm term.Term, m *registry.Morphism, steps []proof.Step) *proof.Proof {
	return &proof.Proof{
		Matched:       true,
		CanonicalName: m.Name,
		CanonicalHash: m.Hash,
		NormalForm:    term.Pretty(finalTerm),
		Reasoning:     fmt.Sprintf("verified equivalent to canonical %s", m.Name),
		Steps:         steps,
	}
}

func toProofSteps(steps []rewrite.Step) []proof.Step {
	out := make([]proof.Step, len(steps))
	for i, s := range steps {
		out[i] = proof.Step{
			Rule:        s.Law,
			From:        s.Before,
			To:          s.After,
			Explanation: fmt.Sprintf("applied algebraic law %s (%s)", s.Law, s.Ref),
		}
	}
	return out
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/lambdamorph/lambdamorph/internal/term"
)

// ComputeHash returns the content-addressed identifier for a definition:
// a SHA-256 digest (stdlib crypto/sha256 — see DESIGN.md for why no pack
// dependency substitutes for it) of the UTF-8 bytes of the α-normalized
// canonical pretty-print, hex-encoded to a 256-bit, fixed-width string
// (§4.9, §6 "Hash algorithm"). alphaEq(M, N) ⇔ ComputeHash(M) ==
// ComputeHash(N), since α-normalization renames every bound variable to
// v0, v1, ... in pre-order before printing.
func ComputeHash(t term.Term) string {
	normalized := AlphaNormalize(t)
	sum := sha256.Sum256([]byte(term.Pretty(normalized)))
	return hex.EncodeToString(sum[:])
}

// AlphaNormalize returns a copy of t with every bound variable renamed to
// v0, v1, ... in pre-order traversal order. Free variables and registry
// identifiers are left untouched.
func AlphaNormalize(t term.Term) term.Term {
	n := &normalizer{}
	return n.walk(t, map[string]string{})
}

type normalizer struct {
	counter int
}

func (n *normalizer) token() string {
	tok := "v" + strconv.Itoa(n.counter)
	n.counter++
	return tok
}

func (n *normalizer) walk(t term.Term, env map[string]string) term.Term {
	switch x := t.(type) {
	case *term.Var:
		if tok, ok := env[x.Name]; ok {
			return &term.Var{Name: tok}
		}
		return &term.Var{Name: x.Name}
	case *term.Lit:
		return &term.Lit{Value: x.Value}
	case *term.Lam:
		tok := n.token()
		newEnv := extend(env, x.Param, tok)
		return &term.Lam{Param: tok, Body: n.walk(x.Body, newEnv)}
	case *term.App:
		return &term.App{Func: n.walk(x.Func, env), Arg: n.walk(x.Arg, env)}
	case *term.Let:
		newEnv := cloneEnv(env)
		bindings := make([]term.Binding, len(x.Bindings))
		for i, b := range x.Bindings {
			value := n.walk(b.Value, newEnv)
			tok := n.token()
			newEnv[b.Name] = tok
			bindings[i] = term.Binding{Name: tok, Value: value}
		}
		return &term.Let{Bindings: bindings, Body: n.walk(x.Body, newEnv)}
	default:
		return t
	}
}

func extend(env map[string]string, name, token string) map[string]string {
	out := cloneEnv(env)
	out[name] = token
	return out
}

func cloneEnv(env map[string]string) map[string]string {
	out := make(map[string]string, len(env)+1)
	for k, v := range env {
		out[k] = v
	}
	return out
}

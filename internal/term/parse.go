// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package term

import (
	"github.com/alecthomas/participle/v2"
	"github.com/samber/oops"
)

// ParseError reports a malformed input with its byte position, per §4.1's
// parse(text) → AST | ParseError{position, message} contract.
type ParseError struct {
	Position int
	Line     int
	Column   int
	Message  string
}

func (e *ParseError) Error() string {
	return oops.
		With("position", e.Position).
		With("line", e.Line).
		With("column", e.Column).
		Errorf("%s", e.Message).Error()
}

// Parse parses a surface-syntax string into a Term. It consumes the whole
// input; trailing junk is a ParseError. Parsing never panics — failures are
// returned as values.
func Parse(text string) (Term, error) {
	raw, err := defaultParser.ParseString("", text)
	if err != nil {
		pe := &ParseError{Message: err.Error()}
		if perr, ok := err.(participle.Error); ok {
			pos := perr.Position()
			pe.Position = pos.Offset
			pe.Line = pos.Line
			pe.Column = pos.Column
			pe.Message = perr.Message()
		}
		return nil, pe
	}
	return fold(raw)
}

// fold collapses the raw participle parse tree into the clean Term sum.
func fold(r *rawTerm) (Term, error) {
	switch {
	case r.Let != nil:
		return foldLet(r.Let)
	case r.Lam != nil:
		return foldLam(r.Lam)
	case r.App != nil:
		return foldApp(r.App)
	default:
		return nil, oops.Errorf("term: empty parse tree")
	}
}

func foldLet(r *rawLet) (Term, error) {
	bindings := make([]Binding, 0, len(r.Bindings))
	for _, b := range r.Bindings {
		v, err := fold(b.Value)
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, Binding{Name: b.Name, Value: v})
	}
	body, err := fold(r.Body)
	if err != nil {
		return nil, err
	}
	return &Let{Bindings: bindings, Body: body}, nil
}

func foldLam(r *rawLam) (Term, error) {
	body, err := fold(r.Body)
	if err != nil {
		return nil, err
	}
	return &Lam{Param: r.Param, Body: body}, nil
}

func foldApp(r *rawApp) (Term, error) {
	if len(r.Atoms) == 0 {
		return nil, oops.Errorf("term: application with no atoms")
	}
	head, err := foldAtom(r.Atoms[0])
	if err != nil {
		return nil, err
	}
	for _, a := range r.Atoms[1:] {
		arg, err := foldAtom(a)
		if err != nil {
			return nil, err
		}
		head = &App{Func: head, Arg: arg}
	}
	return head, nil
}

func foldAtom(r *rawAtom) (Term, error) {
	switch {
	case r.Paren != nil:
		return fold(r.Paren)
	case r.Number != nil:
		return &Lit{Value: *r.Number}, nil
	case r.Bool != nil:
		return &Lit{Value: *r.Bool == "true"}, nil
	case r.Ident != nil:
		return &Var{Name: *r.Ident}, nil
	default:
		return nil, oops.Errorf("term: empty atom")
	}
}

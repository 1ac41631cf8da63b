// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 lambdamorph Contributors

package term

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// termLexer defines the token types for the surface λ-calculus syntax.
// Order matters: longer/more specific patterns must come before shorter
// ones that share a prefix.
var termLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Lambda", Pattern: `λ|\\`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Eq", Pattern: `=`},
	{Name: "Keyword", Pattern: `\b(?:let|in|true|false)\b`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "whitespace", Pattern: `\s+`},
})

// reservedWords MUST NOT appear as plain identifiers; they are grammar
// keywords. A registry identifier may never collide with one of these
// since they all happen to start lowercase.
var reservedWords = map[string]bool{
	"let": true, "in": true, "true": true, "false": true,
}

// IsReservedWord reports whether word is a grammar keyword.
func IsReservedWord(word string) bool {
	return reservedWords[word]
}

// --- Raw grammar (participle) ---
//
// The grammar is deliberately two-layered: participle populates these raw,
// nilable-alternative structs (the same shape as a participle ordered-choice
// grammar node), and fold() below collapses them into the clean Term sum
// the rest of the engine pattern-matches on. This keeps participle's grammar
// idiom (one struct per production, one field per alternative) out of the
// reduction/substitution/rewriting code.

type rawTerm struct {
	Pos lexer.Position `parser:""`
	Let *rawLet        `parser:"  @@"`
	Lam *rawLam        `parser:"| @@"`
	App *rawApp        `parser:"| @@"`
}

type rawLet struct {
	Pos      lexer.Position `parser:""`
	Bindings []*rawBinding  `parser:"'let' @@ (',' @@)*"`
	Body     *rawTerm       `parser:"'in' @@"`
}

type rawBinding struct {
	Pos   lexer.Position `parser:""`
	Name  string         `parser:"@Ident"`
	Value *rawTerm       `parser:"Eq @@"`
}

type rawLam struct {
	Pos   lexer.Position `parser:""`
	Param string         `parser:"('λ' | '\\') @Ident"`
	Body  *rawTerm       `parser:"Dot @@"`
}

// rawApp is one-or-more juxtaposed atoms, left-folded into a chain of
// binary App nodes by fold(). A single atom is not wrapped in an App.
type rawApp struct {
	Pos   lexer.Position `parser:""`
	Atoms []*rawAtom     `parser:"@@+"`
}

type rawAtom struct {
	Pos    lexer.Position `parser:""`
	Paren  *rawTerm       `parser:"  '(' @@ ')'"`
	Number *int64         `parser:"| @Number"`
	Bool   *string        `parser:"| @('true' | 'false')"`
	Ident  *string        `parser:"| @Ident"`
}

// NewParser constructs a participle parser for the surface grammar.
// MaxLookahead enables backtracking: App's juxtaposed atoms and Let's
// comma-separated bindings both require it to disambiguate cleanly.
func NewParser() (*participle.Parser[rawTerm], error) {
	return participle.Build[rawTerm](
		participle.Lexer(termLexer),
		participle.UseLookahead(participle.MaxLookahead),
	)
}

var defaultParser *participle.Parser[rawTerm]

func init() {
	p, err := NewParser()
	if err != nil {
		panic("term: failed to build grammar: " + err.Error())
	}
	defaultParser = p
}

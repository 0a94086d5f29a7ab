// Package lexgen ties the regex parser, NFA builder, DFA builder and
// scanner runtime into one entry point: compile a declaration-ordered
// list of patterns into a shareable automaton, then bind it to a
// source string and a handler table to scan tokens from it.
package lexgen

import (
	"errors"
	"fmt"

	"github.com/kaslex/lexgen/dfa"
	"github.com/kaslex/lexgen/nfa"
	"github.com/kaslex/lexgen/regexast"
	"github.com/kaslex/lexgen/scanner"
	"github.com/kaslex/lexgen/srcmap"
)

// ErrNullableRule is wrapped by a CompileError when a rule's pattern
// matches the empty string (e.g. `a*`). The DFA's start state can never
// itself accept — see dfa.Dfa's doc comment — so a nullable rule could
// never actually fire and is rejected here instead of silently
// compiling into a rule that can never match.
var ErrNullableRule = errors.New("pattern matches the empty string, which is not a legal token rule")

// Rule is one named pattern. Name becomes a TokenKind constructor name
// in caller code; it is not interpreted by Compile beyond being carried
// through to CompileError. Skip marks the "!" sentinel: the rule is
// recognized but its match is always discarded rather than handed to a
// handler. Comment marks a COMMENTS-style rule, excluded from whatever
// TokenKind enumeration the caller derives from a Spec.
type Rule struct {
	Name    string
	Pattern string
	Skip    bool
	Comment bool
}

// Spec is a declaration-ordered set of rules, loadable from YAML via
// LoadSpec or built directly in Go.
type Spec struct {
	Rules []Rule
}

// CompileError reports a regex that failed to parse during Compile. It
// names the offending rule so a caller can point a user at it without
// re-deriving which pattern in the list was bad.
type CompileError struct {
	RuleName string
	Pattern  string
	Err      error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("lexgen: rule %q: pattern %q: %v", e.RuleName, e.Pattern, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// CompiledLexer is an immutable, shareable compiled automaton. One
// CompiledLexer can back any number of concurrent NewLexer calls over
// distinct sources.
type CompiledLexer struct {
	dfa   *dfa.Dfa
	rules []Rule
}

// Rules returns the declaration-ordered rule list the lexer was
// compiled from, so callers can map an emitted Token's Ordinal back to
// a Rule without keeping their own copy of the input slice.
func (c *CompiledLexer) Rules() []Rule {
	return c.rules
}

// Compile parses every rule's pattern, builds one NFA fragment per
// rule tagged with its declaration-order ordinal (so dfa.Build's
// max-ordinal tie-break makes the later-declared rule win), unions the
// fragments, and subset-constructs then minimizes the result into a
// single DFA.
func Compile(rules []Rule) (*CompiledLexer, error) {
	b := nfa.NewBuilder()
	frags := make([]nfa.Fragment, 0, len(rules))
	for i, r := range rules {
		ast, err := regexast.Parse(r.Pattern)
		if err != nil {
			return nil, &CompileError{RuleName: r.Name, Pattern: r.Pattern, Err: err}
		}
		f := b.Build(ast)
		if f.CanBeEmpty {
			return nil, &CompileError{RuleName: r.Name, Pattern: r.Pattern, Err: ErrNullableRule}
		}
		b.SetAccept(f, i)
		frags = append(frags, f)
	}
	n := b.Nfa(b.Union(frags).Head)
	d := dfa.Minimize(dfa.Build(n))
	return &CompiledLexer{dfa: d, rules: rules}, nil
}

// NewLexer binds a compiled automaton to one source and a handler
// table to produce a pull iterator over it. name identifies the source
// in spans resolved through sm. Matches of a Skip rule are discarded
// without calling handler.
func NewLexer[K any](c *CompiledLexer, sm *srcmap.SourceMap, name, src string, handler scanner.Handler[K]) *scanner.Lexer[K] {
	cur := scanner.NewCursor(sm, name, src)
	rules := c.rules
	var wrapped scanner.Handler[K] = func(l *scanner.Lexer[K], ordinal int, text string, span srcmap.Span) (K, bool, error) {
		if rules[ordinal].Skip {
			var zero K
			return zero, false, nil
		}
		return handler(l, ordinal, text, span)
	}
	return scanner.New(c.dfa, wrapped, cur)
}

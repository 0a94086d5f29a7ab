// Package scanner drives a compiled dfa.Dfa over a Cursor to produce a
// stream of tokens. It is a synchronous pull iterator rather than the
// goroutine-plus-channel coroutine a hand-written generated scanner
// might use elsewhere in this codebase's lineage: there are no
// suspension points, and ReadGroup's recursion gives nested-group
// scanning its "resume mid-handler" behavior without a coroutine.
package scanner

import (
	"errors"
	"io"

	"github.com/kaslex/lexgen/dfa"
	"github.com/kaslex/lexgen/srcmap"
)

// Token is one scanned unit: Value is whatever the Handler produced for
// it, Ordinal is the accepting rule's index (used by ReadGroup to spot
// a group's closer), and Span locates it in the source.
type Token[K any] struct {
	Value   K
	Ordinal int
	Span    srcmap.Span
}

// Handler turns raw matched text into a token's payload. emit=false
// tells the lexer to discard this match and keep scanning (the "!"
// sentinel rules, e.g. comments and other skipped input). A handler
// that recognizes an opening-group rule calls lex.ReadGroup to consume
// the nested contents before returning.
type Handler[K any] func(lex *Lexer[K], ordinal int, text string, span srcmap.Span) (value K, emit bool, err error)

// Lexer pulls tokens from src according to d, dispatching each match to
// handler. The zero value is not usable; construct with New.
type Lexer[K any] struct {
	dfa     *dfa.Dfa
	handler Handler[K]
	cur     *Cursor
	done    bool
}

// New binds a compiled automaton and handler table to a cursor.
func New[K any](d *dfa.Dfa, handler Handler[K], cur *Cursor) *Lexer[K] {
	return &Lexer[K]{dfa: d, handler: handler, cur: cur}
}

// Stop fuses the lexer: every subsequent Next returns ErrFused.
func (l *Lexer[K]) Stop() {
	l.done = true
}

// Next skips leading whitespace, scans one token via the DFA, and
// dispatches it to the handler. It loops internally over handler
// results with emit=false (skip rules), so callers only ever see real
// tokens, io.EOF, or a hard error. Once it returns a non-nil error the
// lexer is fused; call Next again only to observe ErrFused.
func (l *Lexer[K]) Next() (Token[K], error) {
	if l.done {
		return Token[K]{}, ErrFused
	}
	for {
		l.cur.skipWhile(isWhitespace)
		if l.cur.eof() {
			l.done = true
			return Token[K]{}, io.EOF
		}

		start := l.cur.pos
		ordinal, end, err := l.scan()
		if err != nil {
			l.done = true
			return Token[K]{}, err
		}
		span := l.cur.span(start, end)
		text := l.cur.text(start, end)
		l.cur.pos = end

		value, emit, err := l.handler(l, ordinal, text, span)
		if err != nil {
			l.done = true
			return Token[K]{}, err
		}
		if emit {
			return Token[K]{Value: value, Ordinal: ordinal, Span: span}, nil
		}
	}
}

// ReadGroup consumes tokens (recursively dispatching to their handlers,
// so a nested group of the same kind fully resolves via its own
// Handler-driven ReadGroup call before this loop ever sees it) until one
// with Ordinal == openerOrdinal+1 — the closer, by the convention that a
// group's opening and closing rules are declared as adjacent ordinals —
// is found. It returns every token seen in between, excluding the
// closer itself.
func (l *Lexer[K]) ReadGroup(openerOrdinal int) ([]Token[K], error) {
	closer := openerOrdinal + 1
	var tokens []Token[K]
	for {
		tok, err := l.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrGroupNotClosed
			}
			return nil, err
		}
		if tok.Ordinal == closer {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// scan walks the DFA from its start state, matching as much input as
// possible: at each step it looks for an out-edge covering the next
// byte and takes it, except that it stops without consuming when the
// current state already accepts and the only way forward is a
// non-greedy edge — that's `*?`'s "prefer the shorter match" rule. It
// never backtracks: subset construction guarantees a transition exists
// for every still-matchable prefix, so the first step with no matching
// edge is exactly the end of the token.
func (l *Lexer[K]) scan() (ordinal int, end int, err error) {
	state := &l.dfa.States[0]
	start := l.cur.pos
	pos := start

	for {
		c, ok := l.cur.peekAt(pos)
		if ok {
			if edge, found := findEdge(state, c); found {
				if state.Accept != dfa.NoAccept && !edge.Greedy {
					return state.Accept, pos, nil
				}
				pos++
				state = &l.dfa.States[edge.Target]
				continue
			}
		}

		if state.Accept == dfa.NoAccept {
			hi := pos
			if ok {
				hi++
			}
			return 0, pos, &SpanError{Span: l.cur.span(start, hi)}
		}
		return state.Accept, pos, nil
	}
}

func findEdge(state *dfa.State, c byte) (dfa.Edge, bool) {
	for _, e := range state.Table {
		if e.Range.Contains(c) {
			return e, true
		}
	}
	return dfa.Edge{}, false
}

// Package regexast implements the hand-written regex parser at the front
// of the pipeline: a recursive-descent LL(1) parser that turns a pattern
// string into an AstNode tree, with no dependency on the standard
// library's regexp/syntax package. The grammar and node shapes mirror the
// original regex-dfa-gen crate's ast module; this is not a generic regex
// engine, only what the pipeline's NFA builder needs to fold over.
package regexast

import "fmt"

// Node is the regex AST. Each variant matches one production of the
// grammar documented on Parse.
type Node interface {
	node()
}

// Char is a leaf matching any character in the half-open range [Lo, Hi).
type Char struct {
	Lo, Hi byte
}

// Options is an alternation: exactly one child must match.
type Options struct {
	Children []Node
}

// Concat is a sequence: every child must match in order.
type Concat struct {
	Children []Node
}

// Multiple is the Kleene star (greedy): zero or more repetitions.
type Multiple struct {
	Child Node
}

// MultipleNonGreedy is `*?`: zero or more repetitions, non-greedy.
type MultipleNonGreedy struct {
	Child Node
}

// EmptyOr is `?`: the child or nothing.
type EmptyOr struct {
	Child Node
}

func (Char) node() {}
func (Options) node() {}
func (Concat) node() {}
func (Multiple) node() {}
func (MultipleNonGreedy) node() {}
func (EmptyOr) node() {}

func (c Char) String() string {
	if c.Hi-c.Lo == 1 {
		return fmt.Sprintf("%q", rune(c.Lo))
	}
	return fmt.Sprintf("[%q-%q)", rune(c.Lo), rune(c.Hi))
}

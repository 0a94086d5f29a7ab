// Package nfa builds a Glushkov-style position automaton from a regexast
// tree: each state corresponds to one Char leaf of the AST (no separate
// epsilon states), carries the greediness tag of the operator that
// produced it, and is wired directly to its successor states. This is
// the representation dfa.Build performs subset construction over.
package nfa

import (
	"github.com/kaslex/lexgen/charset"
	"github.com/kaslex/lexgen/regexast"
)

// NoAccept marks a state that does not accept any pattern.
const NoAccept = -1

// State is one position in the automaton: it matches any character in
// Range, then transitions to every state index in Table. EndNum is the
// ordinal of the rule this state accepts at, or NoAccept.
type State struct {
	Range    charset.Range
	Table    []int
	IsGreedy bool
	EndNum   int
}

// Nfa is the finished automaton: a flat state list plus the entry set
// for the rule (or union of rules) it was built from.
type Nfa struct {
	States []State
	Start  []int
}

// Builder accumulates states across one or more Build calls, so several
// rules can share a single state list before being unioned together.
type Builder struct {
	states []State
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) push(r charset.Range, greedy bool) int {
	id := len(b.states)
	b.states = append(b.states, State{Range: r, IsGreedy: greedy, EndNum: NoAccept})
	return id
}

func (b *Builder) extendAll(ids []int, items []int) {
	for _, id := range ids {
		b.states[id].Table = append(b.states[id].Table, items...)
	}
}

// Fragment is a partially built piece of the automaton: its entry states
// (Head), the states still awaiting an accept tag or successor (Tail),
// and whether it can match the empty string.
type Fragment struct {
	Head       []int
	Tail       []int
	CanBeEmpty bool
}

// Build folds ast into new states on the builder and returns the
// resulting fragment. The fold mirrors the AST shape directly:
//
//   - Char pushes one state.
//   - Options unions its children's heads and tails.
//   - Concat threads each child's tail into the next child's head, with
//     the twist that a run of nullable children at the *start* of the
//     concat must also feed the head: tmpTail/tmpHead below are exactly
//     "the fringe so far" while still inside that nullable prefix.
//   - Multiple/MultipleNonGreedy loop the child's tail back to its own
//     head and mark the fragment nullable; non-greedy is encoded by
//     building the child with greedy=false rather than by a separate
//     state flag.
//   - EmptyOr marks its child nullable without adding a loop-back edge.
func (b *Builder) Build(ast regexast.Node) Fragment {
	var head, tail []int
	canBeEmpty := b.buildFrom(ast, &head, &tail, false)
	return Fragment{Head: head, Tail: tail, CanBeEmpty: canBeEmpty}
}

func (b *Builder) buildFrom(node regexast.Node, head, tail *[]int, greedy bool) bool {
	switch n := node.(type) {
	case regexast.Char:
		id := b.push(charset.Range{Lo: n.Lo, Hi: n.Hi}, greedy)
		*head = append(*head, id)
		*tail = append(*tail, id)
		return false

	case regexast.Options:
		canBeEmpty := false
		for _, sub := range n.Children {
			if b.buildFrom(sub, head, tail, greedy) {
				canBeEmpty = true
			}
		}
		return canBeEmpty

	case regexast.Multiple:
		hlen, tlen := len(*head), len(*tail)
		b.buildFrom(n.Child, head, tail, true)
		b.extendAll((*tail)[tlen:], (*head)[hlen:])
		return true

	case regexast.MultipleNonGreedy:
		hlen, tlen := len(*head), len(*tail)
		b.buildFrom(n.Child, head, tail, false)
		b.extendAll((*tail)[tlen:], (*head)[hlen:])
		return true

	case regexast.EmptyOr:
		b.buildFrom(n.Child, head, tail, greedy)
		return true

	case regexast.Concat:
		var tmpHead, tmpTail, tmp []int
		first := true
		for _, sub := range n.Children {
			if first {
				hlen := len(*head)
				canBeEmpty := b.buildFrom(sub, head, &tmp, false)
				first = canBeEmpty
				b.extendAll(tmpTail, (*head)[hlen:])
				if !canBeEmpty {
					tmpTail = nil
				}
				tmpTail = append(tmpTail, tmp...)
				tmp = nil
			} else {
				canBeEmpty := b.buildFrom(sub, &tmpHead, &tmp, false)
				b.extendAll(tmpTail, tmpHead)
				if !canBeEmpty {
					tmpTail = nil
				}
				tmpTail = append(tmpTail, tmp...)
				tmpHead = nil
				tmp = nil
			}
		}
		*tail = append(*tail, tmpTail...)
		return first

	default:
		panic("nfa: unknown regexast.Node type")
	}
}

// SetAccept tags every tail state of f as accepting endNum.
func (b *Builder) SetAccept(f Fragment, endNum int) {
	for _, id := range f.Tail {
		b.states[id].EndNum = endNum
	}
}

// Union merges fragments as `(frag1|frag2|...)`, used to combine a
// lexer's rules into one automaton before subset construction.
func (b *Builder) Union(frags []Fragment) Fragment {
	var head, tail []int
	canBeEmpty := false
	for _, f := range frags {
		head = append(head, f.Head...)
		tail = append(tail, f.Tail...)
		canBeEmpty = canBeEmpty || f.CanBeEmpty
	}
	return Fragment{Head: head, Tail: tail, CanBeEmpty: canBeEmpty}
}

// Nfa returns the finished automaton with start as its entry set.
func (b *Builder) Nfa(start []int) *Nfa {
	return &Nfa{States: b.states, Start: start}
}

// Len reports the number of states pushed so far.
func (b *Builder) Len() int {
	return len(b.states)
}

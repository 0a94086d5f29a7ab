// Package dfa performs subset construction over an nfa.Nfa, producing a
// deterministic automaton whose transitions are already partitioned into
// disjoint character ranges via rangemap. Construction is memoized in a
// map keyed on the NFA state set each DFA state represents; each state
// not yet in the map is built by recursing into its successors.
package dfa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/kaslex/lexgen/charset"
	"github.com/kaslex/lexgen/nfa"
	"github.com/kaslex/lexgen/rangemap"
)

// NoAccept marks a state that does not accept any rule.
const NoAccept = -1

// Edge is one outgoing transition: any character in Range advances to
// Target. Greedy distinguishes a transition reached via a greedy
// repetition from one reached only via a non-greedy one, so the scanner
// can stop early on a non-greedy match without backtracking.
type Edge struct {
	Range  charset.Range
	Target int
	Greedy bool
}

// State is one DFA state: its out-edges plus the rule it accepts, if any.
type State struct {
	Table  []Edge
	Accept int
}

// Dfa is the finished automaton. State 0 is always the start state: the
// position before any character has been consumed. It never accepts on
// its own — acceptance of the empty string would have to come from a
// nullable rule, which is rejected earlier, at rule-registration time.
type Dfa struct {
	States []State
}

type stKey string

func keyOf(nfaStates []int) stKey {
	var b strings.Builder
	for i, s := range nfaStates {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(s))
	}
	return stKey(b.String())
}

type builder struct {
	nfa    *nfa.Nfa
	states []State
	tab    map[stKey]int
}

// Build runs subset construction over n. n.Start is the set of NFA
// states reachable by consuming exactly one character; state 0 of the
// result is a virtual pre-start position whose table is built directly
// from that set (each start state is itself a valid first target,
// keyed by its own Range), rather than by following transitions out of
// it the way every other state's table is built.
func Build(n *nfa.Nfa) *Dfa {
	b := &builder{nfa: n, tab: make(map[stKey]int)}
	startID := len(b.states)
	b.states = append(b.states, State{Accept: NoAccept})
	b.states[startID].Table = b.buildTable(dedupSorted(n.Start))
	return &Dfa{States: b.states}
}

func dedupSorted(states []int) []int {
	sorted := append([]int(nil), states...)
	sort.Ints(sorted)
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}

// build returns the DFA state index for the set of NFA states currently
// occupied (each having just matched its own Range), building it (and,
// recursively, its successors) if that set hasn't been seen before.
func (b *builder) build(nfaStates []int) int {
	key := keyOf(nfaStates)
	if id, ok := b.tab[key]; ok {
		return id
	}

	id := len(b.states)
	b.states = append(b.states, State{Accept: acceptOf(b.nfa, nfaStates)})
	b.tab[key] = id

	var targetIDs []int
	for _, s := range nfaStates {
		targetIDs = append(targetIDs, b.nfa.States[s].Table...)
	}
	b.states[id].Table = b.buildTable(targetIDs)
	return id
}

// buildTable partitions targetIDs — NFA state ids directly reachable,
// each tagged with its own char range — into disjoint ranges (via
// rangemap) and recursively resolves each range's target DFA state.
func (b *builder) buildTable(targetIDs []int) []Edge {
	rm := rangemap.New[int]()
	for _, t := range targetIDs {
		rm.Insert(b.nfa.States[t].Range, t)
	}

	var table []Edge
	for _, e := range rm.Entries() {
		greedy := false
		for _, t := range e.Values {
			if b.nfa.States[t].IsGreedy {
				greedy = true
			}
		}
		target := b.build(dedupSorted(e.Values))
		table = append(table, Edge{Range: e.Range, Target: target, Greedy: greedy})
	}
	return table
}

func acceptOf(n *nfa.Nfa, nfaStates []int) int {
	accept := NoAccept
	for _, s := range nfaStates {
		if e := n.States[s].EndNum; e != nfa.NoAccept && e > accept {
			accept = e
		}
	}
	return accept
}

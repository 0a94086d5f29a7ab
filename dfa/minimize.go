package dfa

import (
	"fmt"
	"strings"
)

// Minimize collapses states whose out-edge tables are structurally
// identical — same accept, same ranges, same targets, in the same
// order — in a single forward pass. This is not full partition-
// refinement (Hopcroft) minimization: two states that are behaviorally
// equivalent but built with their edges in a different order, or whose
// equivalence only becomes visible after collapsing their successors,
// are left distinct. It catches the duplicate states subset
// construction actually produces (the common case when several NFA
// state sets collapse to the same transition table) in one pass over
// the state list.
func Minimize(d *Dfa) *Dfa {
	seen := make(map[string]int, len(d.States))
	dupOf := make(map[int]int)
	for i, s := range d.States {
		key := stateKey(s)
		if j, ok := seen[key]; ok {
			dupOf[i] = j
		} else {
			seen[key] = i
		}
	}

	remap := make([]int, len(d.States))
	next := 0
	for i := range d.States {
		if j, ok := dupOf[i]; ok {
			remap[i] = remap[j]
		} else {
			remap[i] = next
			next++
		}
	}

	out := make([]State, 0, next)
	for i, s := range d.States {
		if _, dup := dupOf[i]; dup {
			continue
		}
		table := make([]Edge, len(s.Table))
		for k, e := range s.Table {
			table[k] = Edge{Range: e.Range, Target: remap[e.Target], Greedy: e.Greedy}
		}
		out = append(out, State{Table: table, Accept: s.Accept})
	}
	return &Dfa{States: out}
}

func stateKey(s State) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", s.Accept)
	for _, e := range s.Table {
		fmt.Fprintf(&b, "|%d-%d:%d:%t", e.Range.Lo, e.Range.Hi, e.Target, e.Greedy)
	}
	return b.String()
}

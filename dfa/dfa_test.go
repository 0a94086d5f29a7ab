package dfa_test

import (
	"testing"

	"github.com/kaslex/lexgen/dfa"
	"github.com/kaslex/lexgen/nfa"
	"github.com/kaslex/lexgen/regexast"
	"github.com/stretchr/testify/require"
)

func buildDfa(t *testing.T, pattern string) (*nfa.Nfa, *dfa.Dfa) {
	t.Helper()
	ast, err := regexast.Parse(pattern)
	require.NoError(t, err)
	b := nfa.NewBuilder()
	frag := b.Build(ast)
	b.SetAccept(frag, 0)
	n := b.Nfa(frag.Head)
	return n, dfa.Build(n)
}

// Ported from original_source/regex-dfa-gen/src/dfa.rs's `test0`: the
// virtual pre-start state is always present, so the DFA has one more
// state than there are distinct reachable NFA-state sets.
func TestBuildStateCounts(t *testing.T) {
	_, d := buildDfa(t, "12")
	require.Len(t, d.States, 3)

	n, d := buildDfa(t, `([A-Z]*|A[a-z]*?)H`)
	require.Len(t, n.States, 4)
	require.Len(t, d.States, 6)
}

func TestBuildStartStateNeverAccepts(t *testing.T) {
	_, d := buildDfa(t, "a")
	require.Equal(t, dfa.NoAccept, d.States[0].Accept)
}

func TestBuildAcceptingStateAtEndOfMatch(t *testing.T) {
	ast, err := regexast.Parse("ab")
	require.NoError(t, err)
	b := nfa.NewBuilder()
	frag := b.Build(ast)
	b.SetAccept(frag, 7)
	n := b.Nfa(frag.Head)
	d := dfa.Build(n)

	start := d.States[0]
	require.Len(t, start.Table, 1)
	mid := d.States[start.Table[0].Target]
	require.Equal(t, dfa.NoAccept, mid.Accept)
	require.Len(t, mid.Table, 1)
	end := d.States[mid.Table[0].Target]
	require.Equal(t, 7, end.Accept)
}

// Two rules matching the same literal at the same length: later
// declaration order (higher end-num) wins the tie.
func TestBuildTieBreakPrefersLaterRule(t *testing.T) {
	b := nfa.NewBuilder()
	astA, err := regexast.Parse("if")
	require.NoError(t, err)
	astB, err := regexast.Parse("if")
	require.NoError(t, err)

	fragA := b.Build(astA)
	b.SetAccept(fragA, 0)
	fragB := b.Build(astB)
	b.SetAccept(fragB, 1)

	combined := b.Union([]nfa.Fragment{fragA, fragB})
	n := b.Nfa(combined.Head)
	d := dfa.Build(n)

	cur := 0
	for _, c := range []byte("if") {
		var next int
		found := false
		for _, e := range d.States[cur].Table {
			if e.Range.Contains(c) {
				next = e.Target
				found = true
				break
			}
		}
		require.True(t, found)
		cur = next
	}
	require.Equal(t, 1, d.States[cur].Accept)
}

func TestMinimizeCollapsesIdenticalStates(t *testing.T) {
	_, d := buildDfa(t, "a|b")
	min := dfa.Minimize(d)
	require.Less(t, len(min.States), len(d.States))

	// Still accepts exactly the same language: walk 'a' and 'b'.
	for _, c := range []byte("ab") {
		cur := 0
		var next int
		found := false
		for _, e := range min.States[cur].Table {
			if e.Range.Contains(c) {
				next = e.Target
				found = true
				break
			}
		}
		require.Truef(t, found, "char %q", c)
		require.Equal(t, 0, min.States[next].Accept)
	}
}

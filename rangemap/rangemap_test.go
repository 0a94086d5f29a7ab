package rangemap_test

import (
	"testing"

	"github.com/kaslex/lexgen/charset"
	"github.com/kaslex/lexgen/rangemap"
	"github.com/stretchr/testify/require"
)

// rng is a small helper so test tables read like the ported Rust source's
// char ranges ('A'..'Z') instead of raw byte literals.
func rng(lo, hi byte) charset.Range {
	r, ok := charset.New(lo, hi)
	if !ok {
		panic("empty range in test")
	}
	return r
}

func entries[V any](m *rangemap.Map[V]) []rangemap.Entry[V] {
	return m.Entries()
}

// Ported from regex-dfa-gen/src/set.rs test2: overlapping inserts that
// fully contain one another split cleanly into four tagged intervals.
func TestInsertOverlapNested(t *testing.T) {
	m := rangemap.New[int]()
	m.Insert(rng('A', 'Z'), 1)
	m.Insert(rng('A', 'E'), 2)
	m.Insert(rng('C', 'G'), 3)

	got := entries(m)
	require.Len(t, got, 4)
	require.Equal(t, rng('A', 'C'), got[0].Range)
	require.ElementsMatch(t, []int{1, 2}, got[0].Values)
	require.Equal(t, rng('C', 'E'), got[1].Range)
	require.ElementsMatch(t, []int{1, 2, 3}, got[1].Values)
	require.Equal(t, rng('E', 'G'), got[2].Range)
	require.ElementsMatch(t, []int{1, 3}, got[2].Values)
	require.Equal(t, rng('G', 'Z'), got[3].Range)
	require.ElementsMatch(t, []int{1}, got[3].Values)
}

// Ported from set.rs test3: a small interval inserted first, then
// completely covered by a larger one, then re-tagged a third time.
func TestInsertSmallThenCoveringThenReinsert(t *testing.T) {
	m := rangemap.New[int]()
	m.Insert(rng('D', 'E'), 1)
	m.Insert(rng('A', 'Z'), 2)
	m.Insert(rng('D', 'E'), 3)

	got := entries(m)
	require.Len(t, got, 3)

	byRange := map[charset.Range][]int{}
	for _, e := range got {
		byRange[e.Range] = e.Values
	}
	require.ElementsMatch(t, []int{1, 2, 3}, byRange[rng('D', 'E')])
	require.ElementsMatch(t, []int{2}, byRange[rng('A', 'D')])
	require.ElementsMatch(t, []int{2}, byRange[rng('E', 'Z')])
}

// Ported from set.rs test4: straddling inserts split both sides.
func TestInsertStraddling(t *testing.T) {
	m := rangemap.New[int]()
	m.Insert(rng('D', 'E'), 1)
	m.Insert(rng('A', 'E'), 2)
	m.Insert(rng('B', 'Z'), 3)

	got := entries(m)
	byRange := map[charset.Range][]int{}
	for _, e := range got {
		byRange[e.Range] = e.Values
	}
	require.ElementsMatch(t, []int{1, 2, 3}, byRange[rng('D', 'E')])
	require.ElementsMatch(t, []int{2}, byRange[rng('A', 'B')])
	require.ElementsMatch(t, []int{2, 3}, byRange[rng('B', 'D')])
	require.ElementsMatch(t, []int{3}, byRange[rng('E', 'Z')])
}

func TestInsertEmptyRangeIsNoop(t *testing.T) {
	m := rangemap.New[int]()
	m.Insert(charset.Range{Lo: 5, Hi: 5}, 1)
	require.Empty(t, entries(m))
}

func TestInsertDisjointRangesStayDisjoint(t *testing.T) {
	m := rangemap.New[int]()
	m.Insert(rng('A', 'C'), 1)
	m.Insert(rng('D', 'F'), 2)

	got := entries(m)
	require.Len(t, got, 2)
	require.Equal(t, rng('A', 'C'), got[0].Range)
	require.Equal(t, rng('D', 'F'), got[1].Range)
}

// Property from spec.md §8: after any sequence of inserts, for every point
// the value-list at that point equals the multiset of inserts whose range
// contains it, and the keyed intervals partition the union of inserted
// ranges.
func TestInsertCoverageMatchesPointwiseMembership(t *testing.T) {
	type insertion struct {
		r charset.Range
		v int
	}
	ins := []insertion{
		{rng('A', 'M'), 1},
		{rng('F', 'Z'), 2},
		{rng('A', 'z'+1), 3},
		{rng('H', 'K'), 4},
	}

	m := rangemap.New[int]()
	for _, it := range ins {
		m.Insert(it.r, it.v)
	}

	for c := byte(0); c < charset.Max; c++ {
		var want []int
		for _, it := range ins {
			if it.r.Contains(c) {
				want = append(want, it.v)
			}
		}
		var got []int
		for _, e := range entries(m) {
			if e.Range.Contains(c) {
				got = append(got, e.Values...)
				break
			}
		}
		require.ElementsMatchf(t, want, got, "char %q", rune(c))
	}
}

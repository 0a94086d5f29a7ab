package charset_test

import (
	"testing"

	"github.com/kaslex/lexgen/charset"
	"github.com/stretchr/testify/require"
)

func TestNewSuppressesEmptyRanges(t *testing.T) {
	_, ok := charset.New(5, 5)
	require.False(t, ok)

	_, ok = charset.New(5, 2)
	require.False(t, ok)

	r, ok := charset.New(2, 5)
	require.True(t, ok)
	require.Equal(t, charset.Range{Lo: 2, Hi: 5}, r)
}

func TestContains(t *testing.T) {
	r := charset.Range{Lo: 'a', Hi: 'z' + 1}
	require.True(t, r.Contains('m'))
	require.True(t, r.Contains('a'))
	require.True(t, r.Contains('z'))
	require.False(t, r.Contains('A'))
	require.False(t, r.Contains('z'+1))
}

func TestOverlaps(t *testing.T) {
	a := charset.Range{Lo: 0, Hi: 10}
	b := charset.Range{Lo: 5, Hi: 15}
	c := charset.Range{Lo: 10, Hi: 20}

	require.True(t, a.Overlaps(b))
	require.True(t, b.Overlaps(a))
	require.False(t, a.Overlaps(c)) // half-open: 10 is not in a
}

func TestAnyCoversFullAlphabet(t *testing.T) {
	r := charset.Any()
	require.Equal(t, charset.Min, r.Lo)
	require.Equal(t, charset.Max, r.Hi)
	require.False(t, r.Empty())
}

func TestSingle(t *testing.T) {
	r := charset.Single('x')
	require.True(t, r.Contains('x'))
	require.False(t, r.Contains('y'))
}

func TestLessOrdersByLowThenHigh(t *testing.T) {
	a := charset.Range{Lo: 1, Hi: 3}
	b := charset.Range{Lo: 1, Hi: 5}
	c := charset.Range{Lo: 2, Hi: 3}

	require.True(t, charset.Less(a, b))
	require.False(t, charset.Less(b, a))
	require.True(t, charset.Less(a, c))
}

package srcmap_test

import (
	"testing"

	"github.com/kaslex/lexgen/srcmap"
	"github.com/stretchr/testify/require"
)

func TestAddFileAssignsGappedSpans(t *testing.T) {
	m := srcmap.New()
	a := m.AddFile("a.lex", "ab\ncd")
	b := m.AddFile("b.lex", "xy")

	require.Equal(t, uint32(5), a.Len())
	require.Greater(t, b.Lo, a.Hi)

	require.Equal(t, "a.lex", m.SourceName(a))
	require.Equal(t, "b.lex", m.SourceName(b))
}

func TestStartEndLineColumn(t *testing.T) {
	m := srcmap.New()
	span := m.AddFile("f.lex", "ab\ncd\nef")

	start, ok := m.Start(span)
	require.True(t, ok)
	require.Equal(t, srcmap.LineColumn{Line: 1, Column: 0}, start)

	// Offset of 'c' is 3 (a,b,\n,c) -> line 2, column 0.
	mid := srcmap.Span{Lo: span.Lo + 3, Hi: span.Lo + 4}
	got, ok := m.Start(mid)
	require.True(t, ok)
	require.Equal(t, srcmap.LineColumn{Line: 2, Column: 0}, got)

	// Offset of second 'd' on line 2 is 4 -> line 2, column 1.
	d := srcmap.Span{Lo: span.Lo + 4, Hi: span.Lo + 5}
	got, ok = m.Start(d)
	require.True(t, ok)
	require.Equal(t, srcmap.LineColumn{Line: 2, Column: 1}, got)

	end, ok := m.End(span)
	require.True(t, ok)
	require.Equal(t, srcmap.LineColumn{Line: 3, Column: 2}, end)
}

func TestJoinWithinSameFile(t *testing.T) {
	m := srcmap.New()
	span := m.AddFile("f.lex", "abcdef")

	a := srcmap.Span{Lo: span.Lo, Hi: span.Lo + 2}
	b := srcmap.Span{Lo: span.Lo + 3, Hi: span.Lo + 5}

	joined, ok := m.Join(a, b)
	require.True(t, ok)
	require.Equal(t, span.Lo, joined.Lo)
	require.Equal(t, span.Lo+5, joined.Hi)
}

func TestJoinAcrossFilesFails(t *testing.T) {
	m := srcmap.New()
	a := m.AddFile("a.lex", "abc")
	b := m.AddFile("b.lex", "xyz")

	_, ok := m.Join(a, b)
	require.False(t, ok)
}

func TestUnregisteredSpanResolvesFalse(t *testing.T) {
	m := srcmap.New()
	m.AddFile("a.lex", "abc")

	_, ok := m.Start(srcmap.Span{Lo: 9999, Hi: 10000})
	require.False(t, ok)
}

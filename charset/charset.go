// Package charset defines the 7-bit character alphabet the rest of the
// pipeline operates over: half-open ranges [lo, hi) with lo, hi in 0..=128.
package charset

import "fmt"

// Min and Max bound the alphabet. Max is exclusive: the alphabet is
// [Min, Max), i.e. 0..128.
const (
	Min byte = 0
	Max byte = 128
)

// Range is a half-open interval [Lo, Hi) over the 7-bit alphabet.
type Range struct {
	Lo, Hi byte
}

// New builds a Range, reporting false if it would be empty (Lo >= Hi).
// Empty ranges are legal inputs but are suppressed on construction, per
// the data model's invariant that Char leaves are never empty.
func New(lo, hi byte) (Range, bool) {
	if lo >= hi {
		return Range{}, false
	}
	return Range{Lo: lo, Hi: hi}, true
}

// Single returns the one-character range [c, c+1).
func Single(c byte) Range {
	return Range{Lo: c, Hi: c + 1}
}

// Any returns the full-alphabet range, i.e. the AST leaf for `.`.
func Any() Range {
	return Range{Lo: Min, Hi: Max}
}

// Empty reports whether r contains no characters.
func (r Range) Empty() bool {
	return r.Lo >= r.Hi
}

// Contains reports whether c falls inside r.
func (r Range) Contains(c byte) bool {
	return c >= r.Lo && c < r.Hi
}

// Overlaps reports whether r and o share any character.
func (r Range) Overlaps(o Range) bool {
	return r.Lo < o.Hi && o.Lo < r.Hi
}

func (r Range) String() string {
	if r.Hi-r.Lo == 1 {
		return fmt.Sprintf("%q", rune(r.Lo))
	}
	return fmt.Sprintf("[%q-%q)", rune(r.Lo), rune(r.Hi))
}

// Less gives Range a total order, used to canonicalize DFA transition
// tables and NFA state sets.
func Less(a, b Range) bool {
	if a.Lo != b.Lo {
		return a.Lo < b.Lo
	}
	return a.Hi < b.Hi
}

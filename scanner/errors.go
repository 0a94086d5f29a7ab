package scanner

import (
	"errors"
	"fmt"

	"github.com/kaslex/lexgen/srcmap"
)

// SpanError is raised when the DFA has no transition out of a
// non-accepting state: the input at Span doesn't match any rule.
type SpanError struct {
	Span srcmap.Span
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("no rule matches input at bytes %d..%d", e.Span.Lo, e.Span.Hi)
}

// ErrGroupNotClosed is returned by ReadGroup when the input ends before
// the matching closer token is seen.
var ErrGroupNotClosed = errors.New("scanner: group closer not found before end of input")

// ErrFused is returned by Next once the lexer has stopped, whether
// because a prior call returned an error, Stop was called, or the input
// was exhausted. It is deliberately distinct from whatever error ended
// the lexer, so a caller can tell "this is the original failure" from
// "you kept pulling after it".
var ErrFused = errors.New("scanner: Next called on an exhausted or stopped lexer")

package scanner

import "github.com/kaslex/lexgen/srcmap"

// Cursor walks one source string byte by byte, registered with a
// SourceMap so the spans it hands out resolve back to file/line/column.
type Cursor struct {
	sm   *srcmap.SourceMap
	src  []byte
	base uint32
	pos  int
}

// NewCursor registers src under name with sm and returns a Cursor over it.
func NewCursor(sm *srcmap.SourceMap, name, src string) *Cursor {
	span := sm.AddFile(name, src)
	return &Cursor{sm: sm, src: []byte(src), base: span.Lo, pos: 0}
}

func (c *Cursor) eof() bool {
	return c.pos >= len(c.src)
}

// peekAt returns the byte at absolute offset pos without moving the
// cursor, so scan can look ahead speculatively before committing to a
// transition.
func (c *Cursor) peekAt(pos int) (byte, bool) {
	if pos >= len(c.src) {
		return 0, false
	}
	return c.src[pos], true
}

func (c *Cursor) skipWhile(pred func(byte) bool) {
	for c.pos < len(c.src) && pred(c.src[c.pos]) {
		c.pos++
	}
}

func (c *Cursor) span(lo, hi int) srcmap.Span {
	return srcmap.Span{Lo: c.base + uint32(lo), Hi: c.base + uint32(hi)}
}

func (c *Cursor) text(lo, hi int) string {
	return string(c.src[lo:hi])
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

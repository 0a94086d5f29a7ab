// Package srcmap resolves byte spans back to file names and
// line/column positions. Unlike the Rust original's thread-local
// global, SourceMap here is a plain value a caller constructs once and
// threads through the scanner explicitly — the spec's own design note
// prefers that shape for a library.
package srcmap

import (
	"sync"
)

// Span is a half-open byte range [Lo, Hi) into the concatenated source
// registered with a SourceMap. Spans from different SourceMaps, or
// spans predating a file's registration, are not meaningful together.
type Span struct {
	Lo, Hi uint32
}

// Len reports the span's width in bytes.
func (s Span) Len() uint32 {
	return s.Hi - s.Lo
}

// LineColumn is a 1-based line, 0-based column position.
type LineColumn struct {
	Line   int
	Column int
}

type fileInfo struct {
	name  string
	span  Span
	lines []uint32
}

func (f *fileInfo) spanWithin(s Span) bool {
	return s.Lo >= f.span.Lo && s.Hi <= f.span.Hi
}

func (f *fileInfo) offsetLineColumn(offset uint32) LineColumn {
	rel := offset - f.span.Lo
	i, found := search(f.lines, rel)
	if found {
		return LineColumn{Line: i + 1, Column: 0}
	}
	return LineColumn{Line: i, Column: int(rel - f.lines[i-1])}
}

// search mimics Rust's slice::binary_search: it returns (index, true) if
// target is present, or (insertion point, false) otherwise.
func search(lines []uint32, target uint32) (int, bool) {
	lo, hi := 0, len(lines)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case lines[mid] == target:
			return mid, true
		case lines[mid] < target:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return lo, false
}

// SourceMap registers source files and resolves spans against them. The
// zero value is not usable; construct with New. Safe for concurrent use.
type SourceMap struct {
	mu    sync.RWMutex
	files []fileInfo
}

// New returns a SourceMap seeded with a dummy zero-length "<unspecified>"
// file, so a Span{0,0} always resolves rather than panicking.
func New() *SourceMap {
	return &SourceMap{
		files: []fileInfo{{name: "<unspecified>", lines: []uint32{0}}},
	}
}

// AddFile registers src under name and returns the Span covering it.
// Files are append-only: once registered, a file's Span never changes,
// so Spans handed out earlier stay valid.
func (m *SourceMap) AddFile(name, src string) Span {
	m.mu.Lock()
	defer m.mu.Unlock()

	length, lines := linesOffsets(src)
	lo := m.files[len(m.files)-1].span.Hi + 1 // leave a gap between files
	span := Span{Lo: lo, Hi: lo + uint32(length)}
	m.files = append(m.files, fileInfo{name: name, span: span, lines: lines})
	return span
}

func linesOffsets(s string) (int, []uint32) {
	lines := []uint32{0}
	total := 0
	for i := 0; i < len(s); i++ {
		total++
		if s[i] == '\n' {
			lines = append(lines, uint32(total))
		}
	}
	return total, lines
}

func (m *SourceMap) fileInfo(span Span) *fileInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.files {
		if m.files[i].spanWithin(span) {
			return &m.files[i]
		}
	}
	return nil
}

// SourceName returns the name of the file span was taken from, or ""
// if span doesn't belong to any file registered with m.
func (m *SourceMap) SourceName(span Span) string {
	f := m.fileInfo(span)
	if f == nil {
		return ""
	}
	return f.name
}

// Start returns the line/column of span's first byte.
func (m *SourceMap) Start(span Span) (LineColumn, bool) {
	f := m.fileInfo(span)
	if f == nil {
		return LineColumn{}, false
	}
	return f.offsetLineColumn(span.Lo), true
}

// End returns the line/column of span's last (exclusive) byte.
func (m *SourceMap) End(span Span) (LineColumn, bool) {
	f := m.fileInfo(span)
	if f == nil {
		return LineColumn{}, false
	}
	return f.offsetLineColumn(span.Hi), true
}

// Join returns the smallest span covering both a and b, provided they
// belong to the same registered file. ok is false if they don't.
func (m *SourceMap) Join(a, b Span) (joined Span, ok bool) {
	f := m.fileInfo(a)
	if f == nil || !f.spanWithin(b) {
		return Span{}, false
	}
	lo, hi := a.Lo, a.Hi
	if b.Lo < lo {
		lo = b.Lo
	}
	if b.Hi > hi {
		hi = b.Hi
	}
	return Span{Lo: lo, Hi: hi}, true
}

// location.go provides source positions for tokens and diagnostics.
package markup

import (
	"fmt"
	"strings"
)

// Location is an immutable position in the source text. Line and Column
// are 1-based; Offset is the absolute byte offset.
type Location struct {
	Line   int
	Column int
	Offset int
}

// LocationAt derives a Location from an absolute byte offset into source.
// Offsets outside the source are clamped. Column counts runes, not bytes,
// so positions inside multi-byte text stay meaningful.
func LocationAt(source string, offset int) Location {
	if offset < 0 {
		offset = 0
	}
	if offset > len(source) {
		offset = len(source)
	}

	before := source[:offset]
	line := strings.Count(before, "\n") + 1

	lineStart := strings.LastIndexByte(before, '\n') + 1
	column := len([]rune(before[lineStart:])) + 1

	return Location{Line: line, Column: column, Offset: offset}
}

func (l Location) String() string {
	return fmt.Sprintf("line %d, column %d", l.Line, l.Column)
}

// SourceLine returns the full line of source containing l, without its
// trailing newline. Used by diagnostic printers.
func (l Location) SourceLine(source string) string {
	offset := l.Offset
	if offset > len(source) {
		offset = len(source)
	}
	start := strings.LastIndexByte(source[:offset], '\n') + 1
	end := strings.IndexByte(source[offset:], '\n')
	if end < 0 {
		return source[start:]
	}
	return source[start : offset+end]
}

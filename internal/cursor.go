package internal

import "unicode/utf8"

// Cursor tracks a position in JSON text as runes are consumed or emitted.
// Line is 1-based, Column and Pos are 0-based. Pos counts bytes, Column
// counts runes since LinePos, the byte offset of the last line terminator.
type Cursor struct {
	Line    int
	Column  int
	Pos     int
	LinePos int
}

// NewCursor returns a cursor at the start of the text
func NewCursor() Cursor {
	return Cursor{Line: 1}
}

// Advance moves the cursor past r, which occupies size bytes.
// A tab counts as TabWidth columns, a carriage return resets the column
// without starting a new line and a line feed starts a new line.
func (c *Cursor) Advance(r rune, size int) {
	c.Pos += size
	switch r {
	case '\n':
		c.Line++
		c.Column = 0
		c.LinePos = c.Pos
	case '\r':
		c.Column = 0
		c.LinePos = c.Pos
	case '\t':
		c.Column += TabWidth
	default:
		c.Column++
	}
}

// AdvanceString moves the cursor past every rune of s
func (c *Cursor) AdvanceString(s string) {
	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			c.Advance(rune(b), 1)
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		c.Advance(r, size)
		i += size
	}
}

// IsSpace reports whether the character is a JSON whitespace character
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// IsDigit reports whether the character is a digit
func IsDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// HexValue returns the value of a case-insensitive hex digit
func HexValue(r rune) (rune, bool) {
	switch {
	case '0' <= r && r <= '9':
		return r - '0', true
	case 'a' <= r && r <= 'f':
		return r - 'a' + 10, true
	case 'A' <= r && r <= 'F':
		return r - 'A' + 10, true
	}
	return 0, false
}

package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorAdvanceString(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Cursor
	}{
		{name: "empty", text: "", want: Cursor{Line: 1}},
		{name: "ascii", text: "abc", want: Cursor{Line: 1, Column: 3, Pos: 3}},
		{name: "tab", text: "\t\t", want: Cursor{Line: 1, Column: 8, Pos: 2}},
		{name: "line feed", text: "ab\ncd", want: Cursor{Line: 2, Column: 2, Pos: 5, LinePos: 3}},
		{name: "bare carriage return", text: "ab\rc", want: Cursor{Line: 1, Column: 1, Pos: 4, LinePos: 3}},
		{name: "crlf", text: "{\r\n  ", want: Cursor{Line: 2, Column: 2, Pos: 5, LinePos: 3}},
		{name: "multibyte", text: "é😀", want: Cursor{Line: 1, Column: 2, Pos: 6}},
		{name: "invalid utf8", text: "\xff\xfe", want: Cursor{Line: 1, Column: 2, Pos: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor()
			c.AdvanceString(tt.text)
			assert.Equal(t, tt.want, c)
			assert.LessOrEqual(t, c.LinePos, c.Pos)
		})
	}
}

func TestCursorAdvanceMatchesString(t *testing.T) {
	text := "a\tb\r\nc\rd\n\n  e"
	byRune := NewCursor()
	for _, r := range text {
		byRune.Advance(r, len(string(r)))
	}
	byString := NewCursor()
	byString.AdvanceString(text)
	assert.Equal(t, byString, byRune)
}

func TestHexValue(t *testing.T) {
	for r, want := range map[rune]rune{'0': 0, '9': 9, 'a': 10, 'F': 15} {
		got, ok := HexValue(r)
		assert.True(t, ok, string(r))
		assert.Equal(t, want, got, string(r))
	}
	for _, r := range "gG-x " {
		_, ok := HexValue(r)
		assert.False(t, ok, string(r))
	}
}

func TestIsSpace(t *testing.T) {
	for _, c := range []byte(" \t\r\n") {
		assert.True(t, IsSpace(c))
	}
	for _, c := range []byte("a\v\f0") {
		assert.False(t, IsSpace(c))
	}
}

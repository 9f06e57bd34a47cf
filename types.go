package jsonmap

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cybergodev/jsonmap/internal"
)

// Location is a position in JSON text
type Location struct {
	// Line is 1-based
	Line int `json:"line" yaml:"line"`
	// Column is 0-based and counts runes; a tab counts as four
	Column int `json:"column" yaml:"column"`
	// Pos is the 0-based byte offset
	Pos int `json:"pos" yaml:"pos"`
	// LinePos is the byte offset Column is counted from
	LinePos int `json:"linePos" yaml:"linePos"`
}

// String formats the location as line:column
func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

func locationOf(c internal.Cursor) Location {
	return Location(c)
}

// PointerEntry holds the locations recorded for one JSON Pointer.
// Key and KeyEnd are set only for object members.
type PointerEntry struct {
	Value    Location  `json:"value" yaml:"value"`
	ValueEnd Location  `json:"valueEnd" yaml:"valueEnd"`
	Key      *Location `json:"key,omitempty" yaml:"key,omitempty"`
	KeyEnd   *Location `json:"keyEnd,omitempty" yaml:"keyEnd,omitempty"`
}

// HasKey reports whether the entry denotes an object member
func (e *PointerEntry) HasKey() bool {
	return e.Key != nil && e.KeyEnd != nil
}

// Pointers maps JSON Pointers to the locations of their values.
// The root value is at "".
type Pointers map[string]*PointerEntry

// Get returns the entry for ptr
func (p Pointers) Get(ptr string) (*PointerEntry, bool) {
	entry, ok := p[ptr]
	return entry, ok
}

// Paths returns all pointers in sorted order
func (p Pointers) Paths() []string {
	paths := make([]string, 0, len(p))
	for ptr := range p {
		paths = append(paths, ptr)
	}
	sort.Strings(paths)
	return paths
}

// entry returns the entry for ptr, creating it on first use
func (p Pointers) entry(ptr string) *PointerEntry {
	e, ok := p[ptr]
	if !ok {
		e = &PointerEntry{}
		p[ptr] = e
	}
	return e
}

// dropChildren removes every entry below ptr, keeping ptr itself
func (p Pointers) dropChildren(ptr string) {
	prefix := ptr + "/"
	for child := range p {
		if strings.HasPrefix(child, prefix) {
			delete(p, child)
		}
	}
}

// ParseResult is the outcome of Parse
type ParseResult struct {
	Data     any
	Pointers Pointers
	source   string
}

// Source returns the parsed text
func (r *ParseResult) Source() string {
	return r.source
}

// Span returns the source text of the value at ptr
func (r *ParseResult) Span(ptr string) (string, bool) {
	return valueSpan(r.source, r.Pointers, ptr)
}

// KeySpan returns the quoted source text of the member name at ptr
func (r *ParseResult) KeySpan(ptr string) (string, bool) {
	return keySpan(r.source, r.Pointers, ptr)
}

// StringifyResult is the outcome of Stringify
type StringifyResult struct {
	JSON     string
	Pointers Pointers
}

// Span returns the emitted text of the value at ptr
func (r *StringifyResult) Span(ptr string) (string, bool) {
	return valueSpan(r.JSON, r.Pointers, ptr)
}

// KeySpan returns the emitted, quoted member name at ptr
func (r *StringifyResult) KeySpan(ptr string) (string, bool) {
	return keySpan(r.JSON, r.Pointers, ptr)
}

func valueSpan(text string, pointers Pointers, ptr string) (string, bool) {
	entry, ok := pointers[ptr]
	if !ok || !validSpan(text, entry.Value, entry.ValueEnd) {
		return "", false
	}
	return text[entry.Value.Pos:entry.ValueEnd.Pos], true
}

func keySpan(text string, pointers Pointers, ptr string) (string, bool) {
	entry, ok := pointers[ptr]
	if !ok || !entry.HasKey() || !validSpan(text, *entry.Key, *entry.KeyEnd) {
		return "", false
	}
	return text[entry.Key.Pos:entry.KeyEnd.Pos], true
}

func validSpan(text string, start, end Location) bool {
	return 0 <= start.Pos && start.Pos <= end.Pos && end.Pos <= len(text)
}

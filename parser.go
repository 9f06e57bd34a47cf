package jsonmap

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/cybergodev/jsonmap/internal"
)

// parser scans JSON text once, front to back. prev holds the cursor state
// before the last consumed rune so that exactly one rune can be pushed back.
type parser struct {
	src      string
	cur      internal.Cursor
	prev     internal.Cursor
	pointers Pointers
}

func parse(text string) (*ParseResult, error) {
	p := &parser{
		src:      text,
		cur:      internal.NewCursor(),
		pointers: make(Pointers),
	}
	data, err := p.parseValue("", true)
	if err != nil {
		return nil, err
	}
	return &ParseResult{Data: data, Pointers: p.pointers, source: text}, nil
}

func (p *parser) atEnd() bool {
	return p.cur.Pos >= len(p.src)
}

// peek returns the next byte without consuming it, or 0 at the end
func (p *parser) peek() byte {
	if p.atEnd() {
		return 0
	}
	return p.src[p.cur.Pos]
}

// next consumes one rune
func (p *parser) next() (rune, error) {
	if p.atEnd() {
		return 0, p.endError()
	}
	p.prev = p.cur
	if b := p.src[p.cur.Pos]; b < utf8.RuneSelf {
		p.cur.Advance(rune(b), 1)
		return rune(b), nil
	}
	r, size := utf8.DecodeRuneInString(p.src[p.cur.Pos:])
	p.cur.Advance(r, size)
	return r, nil
}

// back undoes the last next
func (p *parser) back() {
	p.cur = p.prev
}

func (p *parser) skipSpace() {
	for !p.atEnd() {
		c := p.src[p.cur.Pos]
		if !internal.IsSpace(c) {
			return
		}
		p.cur.Advance(rune(c), 1)
	}
}

func (p *parser) loc() Location {
	return locationOf(p.cur)
}

func (p *parser) endError() error {
	return &UnexpectedEndError{Line: p.cur.Line, Column: p.cur.Column}
}

// tokenError reports the rune at the cursor
func (p *parser) tokenError() error {
	if p.atEnd() {
		return p.endError()
	}
	_, size := utf8.DecodeRuneInString(p.src[p.cur.Pos:])
	return &SyntaxError{
		Line:   p.cur.Line,
		Column: p.cur.Column,
		Offset: p.cur.Pos,
		Token:  p.src[p.cur.Pos : p.cur.Pos+size],
	}
}

// backError reports the rune that was just consumed
func (p *parser) backError() error {
	p.back()
	return p.tokenError()
}

func (p *parser) parseValue(ptr string, topLevel bool) (any, error) {
	p.skipSpace()
	entry := p.pointers.entry(ptr)
	entry.Value = p.loc()
	if p.atEnd() {
		return nil, p.endError()
	}

	var (
		data any
		err  error
	)
	switch c := p.peek(); c {
	case 't':
		data, err = true, p.literal("true")
	case 'f':
		data, err = false, p.literal("false")
	case 'n':
		data, err = nil, p.literal("null")
	case '"':
		p.next()
		data, err = p.parseString()
	case '[':
		p.next()
		data, err = p.parseArray(ptr)
	case '{':
		p.next()
		data, err = p.parseObject(ptr)
	default:
		if c != '-' && !internal.IsDigit(c) {
			return nil, p.tokenError()
		}
		data, err = p.parseNumber()
	}
	if err != nil {
		return nil, err
	}
	entry.ValueEnd = p.loc()

	if topLevel {
		p.skipSpace()
		if !p.atEnd() {
			return nil, p.tokenError()
		}
	}
	return data, nil
}

func (p *parser) literal(word string) error {
	for i := 0; i < len(word); i++ {
		r, err := p.next()
		if err != nil {
			return err
		}
		if r != rune(word[i]) {
			return p.backError()
		}
	}
	return nil
}

// parseString reads up to and including the closing quote; the opening
// quote has been consumed.
func (p *parser) parseString() (string, error) {
	var sb strings.Builder
	for {
		start := p.cur.Pos
		r, err := p.next()
		if err != nil {
			return "", err
		}
		switch r {
		case '"':
			return sb.String(), nil
		case '\\':
			if err := p.parseEscape(&sb); err != nil {
				return "", err
			}
		default:
			sb.WriteString(p.src[start:p.cur.Pos])
		}
	}
}

func (p *parser) parseEscape(sb *strings.Builder) error {
	r, err := p.next()
	if err != nil {
		return err
	}
	if c, ok := shortEscape(r); ok {
		sb.WriteByte(c)
		return nil
	}
	if r != 'u' {
		return p.backError()
	}

	unit, err := p.hex4()
	if err != nil {
		return err
	}
	if !utf16.IsSurrogate(unit) {
		sb.WriteRune(unit)
		return nil
	}
	if low, ok := p.peekLowSurrogate(); ok && unit < 0xdc00 {
		for i := 0; i < 6; i++ {
			p.next()
		}
		sb.WriteRune(utf16.DecodeRune(unit, low))
		return nil
	}
	sb.WriteRune(utf8.RuneError)
	return nil
}

func shortEscape(r rune) (byte, bool) {
	switch r {
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case '"', '/', '\\':
		return byte(r), true
	}
	return 0, false
}

func (p *parser) hex4() (rune, error) {
	var code rune
	for i := 0; i < 4; i++ {
		r, err := p.next()
		if err != nil {
			return 0, err
		}
		d, ok := internal.HexValue(r)
		if !ok {
			return 0, p.backError()
		}
		code = code<<4 | d
	}
	return code, nil
}

// peekLowSurrogate looks for a \uDC00-\uDFFF escape at the cursor without
// consuming it
func (p *parser) peekLowSurrogate() (rune, bool) {
	rest := p.src[p.cur.Pos:]
	if len(rest) < 6 || rest[0] != '\\' || rest[1] != 'u' {
		return 0, false
	}
	var code rune
	for _, c := range rest[2:6] {
		d, ok := internal.HexValue(c)
		if !ok {
			return 0, false
		}
		code = code<<4 | d
	}
	if code < 0xdc00 || code > 0xdfff {
		return 0, false
	}
	return code, true
}

func (p *parser) parseNumber() (any, error) {
	start := p.cur.Pos
	integer := true

	if p.peek() == '-' {
		p.next()
	}
	if p.peek() == '0' {
		p.next()
	} else if err := p.digits(); err != nil {
		return nil, err
	}

	if p.peek() == '.' {
		p.next()
		integer = false
		if err := p.digits(); err != nil {
			return nil, err
		}
	}

	if c := p.peek(); c == 'e' || c == 'E' {
		p.next()
		integer = false
		if c := p.peek(); c == '+' || c == '-' {
			p.next()
		}
		if err := p.digits(); err != nil {
			return nil, err
		}
	}

	return numberValue(p.src[start:p.cur.Pos], integer)
}

// digits consumes one or more decimal digits
func (p *parser) digits() error {
	n := 0
	for !p.atEnd() && internal.IsDigit(p.src[p.cur.Pos]) {
		p.next()
		n++
	}
	if n == 0 {
		return p.tokenError()
	}
	return nil
}

func (p *parser) parseArray(ptr string) ([]any, error) {
	arr := make([]any, 0)
	p.skipSpace()
	r, err := p.next()
	if err != nil {
		return nil, err
	}
	if r == ']' {
		return arr, nil
	}
	p.back()

	for i := 0; ; i++ {
		item, err := p.parseValue(internal.AppendIndex(ptr, i), false)
		if err != nil {
			return nil, err
		}
		arr = append(arr, item)

		p.skipSpace()
		r, err := p.next()
		if err != nil {
			return nil, err
		}
		if r == ']' {
			return arr, nil
		}
		if r != ',' {
			return nil, p.backError()
		}
	}
}

func (p *parser) parseObject(ptr string) (*Object, error) {
	obj := NewObject()
	p.skipSpace()
	r, err := p.next()
	if err != nil {
		return nil, err
	}
	if r == '}' {
		return obj, nil
	}
	p.back()

	for {
		p.skipSpace()
		key := p.loc()
		r, err := p.next()
		if err != nil {
			return nil, err
		}
		if r != '"' {
			return nil, p.backError()
		}
		name, err := p.parseString()
		if err != nil {
			return nil, err
		}
		keyEnd := p.loc()

		memberPtr := internal.AppendKey(ptr, name)
		if _, seen := obj.Get(name); seen {
			p.pointers.dropChildren(memberPtr)
		}
		entry := p.pointers.entry(memberPtr)
		entry.Key = &key
		entry.KeyEnd = &keyEnd

		p.skipSpace()
		if r, err = p.next(); err != nil {
			return nil, err
		}
		if r != ':' {
			return nil, p.backError()
		}

		value, err := p.parseValue(memberPtr, false)
		if err != nil {
			return nil, err
		}
		obj.Set(name, value)

		p.skipSpace()
		if r, err = p.next(); err != nil {
			return nil, err
		}
		if r == '}' {
			return obj, nil
		}
		if r != ',' {
			return nil, p.backError()
		}
	}
}

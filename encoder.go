package jsonmap

import (
	"bytes"
	"encoding"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/cybergodev/jsonmap/internal"
)

// shape is the closed set of value kinds the stringifier recognizes
type shape int

const (
	shapeInvalid shape = iota
	shapeNull
	shapeBigInt
	shapeText
	shapeBool
	shapeInt
	shapeUint
	shapeFloat
	shapeString
	shapeArray
	shapeObject
	shapeSet
	shapeMap
	shapeStruct
)

var (
	bigIntType        = reflect.TypeOf(big.Int{})
	bigIntPtrType     = reflect.TypeOf((*big.Int)(nil))
	objectPtrType     = reflect.TypeOf((*Object)(nil))
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	setMemberType     = reflect.TypeOf(struct{}{})
)

// classify unwraps pointers and interfaces and returns the value to encode
// together with its shape
func classify(v reflect.Value) (reflect.Value, shape) {
	for {
		if !v.IsValid() {
			return v, shapeNull
		}
		if v.Kind() == reflect.Interface {
			if v.IsNil() {
				return v, shapeNull
			}
			v = v.Elem()
			continue
		}
		t := v.Type()
		switch t {
		case bigIntPtrType:
			if v.IsNil() {
				return v, shapeNull
			}
			return v, shapeBigInt
		case objectPtrType:
			if v.IsNil() {
				return v, shapeNull
			}
			return v, shapeObject
		case bigIntType:
			return addressable(v).Addr(), shapeBigInt
		}

		kind := v.Kind()
		if t.Implements(textMarshalerType) {
			if kind == reflect.Pointer && v.IsNil() {
				return v, shapeNull
			}
			return v, shapeText
		}
		if kind != reflect.Pointer && v.CanAddr() && reflect.PointerTo(t).Implements(textMarshalerType) {
			return v.Addr(), shapeText
		}
		if kind != reflect.Pointer {
			break
		}
		if v.IsNil() {
			return v, shapeNull
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Bool:
		return v, shapeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v, shapeInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v, shapeUint
	case reflect.Float32, reflect.Float64:
		return v, shapeFloat
	case reflect.String:
		return v, shapeString
	case reflect.Slice:
		if v.IsNil() {
			return v, shapeNull
		}
		return v, shapeArray
	case reflect.Array:
		return v, shapeArray
	case reflect.Map:
		if v.IsNil() {
			return v, shapeNull
		}
		if v.Type().Elem() == setMemberType {
			return v, shapeSet
		}
		return v, shapeMap
	case reflect.Struct:
		return v, shapeStruct
	default:
		return v, shapeInvalid
	}
}

func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}

// validValue reports whether v can be serialized
func validValue(v reflect.Value) bool {
	_, s := classify(v)
	return s != shapeInvalid
}

// encoder emits JSON text and records pointer locations as it goes. Every
// byte written passes through cur so that the recorded locations follow
// the same arithmetic as the parser.
type encoder struct {
	buf      *bytes.Buffer
	cur      internal.Cursor
	indent   string
	pointers Pointers
}

func stringify(value any, indent string) (*StringifyResult, error) {
	rv := reflect.ValueOf(value)
	if v, s := classify(rv); s == shapeInvalid {
		return nil, &UnexpectedTypeError{Kind: v.Kind().String()}
	}

	e := &encoder{
		buf:      internal.GetEncoderBuffer(),
		cur:      internal.NewCursor(),
		indent:   indent,
		pointers: make(Pointers),
	}
	defer internal.PutEncoderBuffer(e.buf)

	if err := e.encodeValue(rv, 0, ""); err != nil {
		return nil, err
	}
	return &StringifyResult{JSON: e.buf.String(), Pointers: e.pointers}, nil
}

func (e *encoder) loc() Location {
	return locationOf(e.cur)
}

func (e *encoder) write(s string) {
	e.buf.WriteString(s)
	e.cur.AdvanceString(s)
}

func (e *encoder) writeByte(c byte) {
	e.buf.WriteByte(c)
	e.cur.Advance(rune(c), 1)
}

// newline starts a new line indented to level; it writes nothing in
// compact mode
func (e *encoder) newline(level int) {
	if e.indent == "" {
		return
	}
	e.writeByte('\n')
	for i := 0; i < level; i++ {
		e.write(e.indent)
	}
}

// encodeValue encodes any value recursively. Values of an invalid shape
// are written as null; callers that must omit them filter beforehand.
func (e *encoder) encodeValue(v reflect.Value, level int, ptr string) error {
	entry := e.pointers.entry(ptr)
	entry.Value = e.loc()

	v, s := classify(v)
	var err error
	switch s {
	case shapeNull, shapeInvalid:
		e.write("null")
	case shapeBigInt:
		e.write(v.Interface().(*big.Int).String())
	case shapeText:
		err = e.encodeText(v, ptr)
	case shapeBool:
		e.write(strconv.FormatBool(v.Bool()))
	case shapeInt:
		e.write(strconv.FormatInt(v.Int(), 10))
	case shapeUint:
		e.write(strconv.FormatUint(v.Uint(), 10))
	case shapeFloat:
		e.write(formatFloat(v.Float(), v.Type().Bits()))
	case shapeString:
		e.writeQuoted(v.String())
	case shapeArray:
		err = e.encodeArray(v, level, ptr)
	case shapeObject:
		err = e.encodeMembers(objectMembers(v.Interface().(*Object)), level, ptr)
	case shapeSet:
		var members []member
		if members, err = setMembers(v); err == nil {
			err = e.encodeMembers(members, level, ptr)
		}
	case shapeMap:
		var members []member
		if members, err = mapMembers(v); err == nil {
			err = e.encodeMembers(members, level, ptr)
		}
	case shapeStruct:
		err = e.encodeMembers(structMembers(v), level, ptr)
	}
	if err != nil {
		return err
	}

	entry.ValueEnd = e.loc()
	return nil
}

func (e *encoder) encodeText(v reflect.Value, ptr string) error {
	text, err := v.Interface().(encoding.TextMarshaler).MarshalText()
	if err != nil {
		return newPathError("stringify", ptr, fmt.Sprintf("MarshalText of %s failed", v.Type()), err)
	}
	e.writeQuoted(string(text))
	return nil
}

// encodeArray encodes slices and arrays. Elements keep their indices;
// invalid elements become null.
func (e *encoder) encodeArray(v reflect.Value, level int, ptr string) error {
	length := v.Len()
	if length == 0 {
		e.write("[]")
		return nil
	}

	e.writeByte('[')
	for i := 0; i < length; i++ {
		if i > 0 {
			e.writeByte(',')
		}
		e.newline(level + 1)
		if err := e.encodeValue(v.Index(i), level+1, internal.AppendIndex(ptr, i)); err != nil {
			return err
		}
	}
	e.newline(level)
	e.writeByte(']')
	return nil
}

type member struct {
	key   string
	value reflect.Value
}

// encodeMembers encodes an object from members already stripped of
// invalid values
func (e *encoder) encodeMembers(members []member, level int, ptr string) error {
	if len(members) == 0 {
		e.write("{}")
		return nil
	}

	e.writeByte('{')
	for i, m := range members {
		if i > 0 {
			e.writeByte(',')
		}
		e.newline(level + 1)

		memberPtr := internal.AppendKey(ptr, m.key)
		entry := e.pointers.entry(memberPtr)
		key := e.loc()
		e.writeQuoted(m.key)
		keyEnd := e.loc()
		entry.Key, entry.KeyEnd = &key, &keyEnd

		e.writeByte(':')
		if e.indent != "" {
			e.writeByte(' ')
		}
		if err := e.encodeValue(m.value, level+1, memberPtr); err != nil {
			return err
		}
	}
	e.newline(level)
	e.writeByte('}')
	return nil
}

func objectMembers(o *Object) []member {
	members := make([]member, 0, o.Len())
	o.Range(func(key string, value any) bool {
		if rv := reflect.ValueOf(value); validValue(rv) {
			members = append(members, member{key: key, value: rv})
		}
		return true
	})
	return members
}

// setMembers maps every element of a map[K]struct{} to true
func setMembers(v reflect.Value) ([]member, error) {
	members := make([]member, 0, v.Len())
	trueValue := reflect.ValueOf(true)
	for _, k := range v.MapKeys() {
		key, err := keyString(k)
		if err != nil {
			return nil, err
		}
		members = append(members, member{key: key, value: trueValue})
	}
	sortMembers(members)
	return members, nil
}

func mapMembers(v reflect.Value) ([]member, error) {
	members := make([]member, 0, v.Len())
	iter := v.MapRange()
	for iter.Next() {
		value := iter.Value()
		if !validValue(value) {
			continue
		}
		key, err := keyString(iter.Key())
		if err != nil {
			return nil, err
		}
		members = append(members, member{key: key, value: value})
	}
	sortMembers(members)
	return members, nil
}

func sortMembers(members []member) {
	sort.Slice(members, func(i, j int) bool {
		return members[i].key < members[j].key
	})
}

// keyString coerces a map key to a member name
func keyString(k reflect.Value) (string, error) {
	for k.Kind() == reflect.Interface {
		if k.IsNil() {
			return "null", nil
		}
		k = k.Elem()
	}
	if k.Kind() == reflect.String {
		return k.String(), nil
	}
	if tm, ok := k.Interface().(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return "", newOperationError("stringify", fmt.Sprintf("MarshalText of map key %s failed", k.Type()), err)
		}
		return string(text), nil
	}
	switch k.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(k.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(k.Uint(), 10), nil
	}
	return fmt.Sprint(k.Interface()), nil
}

// structMembers lists exported fields in declaration order, honoring json
// tags for names, "-" and omitempty
func structMembers(v reflect.Value) []member {
	t := v.Type()
	members := make([]member, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = field.Name
		}

		fv := v.Field(i)
		if hasOption(opts, "omitempty") && isEmptyValue(fv) {
			continue
		}
		if !validValue(fv) {
			continue
		}
		members = append(members, member{key: name, value: fv})
	}
	return members
}

func hasOption(opts, option string) bool {
	for opts != "" {
		var name string
		name, opts, _ = strings.Cut(opts, ",")
		if name == option {
			return true
		}
	}
	return false
}

// isEmptyValue checks if a value is considered empty for omitempty
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

// writeQuoted writes s as a string literal. Only the quote, the backslash
// and the five short control escapes are escaped; everything else,
// including non-ASCII text, is written as is.
func (e *encoder) writeQuoted(s string) {
	e.writeByte('"')
	start := 0
	for i := 0; i < len(s); i++ {
		esc := escapeSequence(s[i])
		if esc == "" {
			continue
		}
		e.write(s[start:i])
		e.write(esc)
		start = i + 1
	}
	e.write(s[start:])
	e.writeByte('"')
}

func escapeSequence(c byte) string {
	switch c {
	case '"':
		return `\"`
	case '\\':
		return `\\`
	case '\b':
		return `\b`
	case '\f':
		return `\f`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	}
	return ""
}

// formatFloat formats like ECMAScript Number.prototype.toString: fixed
// notation for magnitudes in [1e-6, 1e21), exponent notation otherwise.
// NaN and infinities have no JSON form and become null.
func formatFloat(f float64, bits int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 {
		if bits == 64 && (abs < 1e-6 || abs >= 1e21) || bits == 32 && (float32(abs) < 1e-6 || float32(abs) >= 1e21) {
			format = 'e'
		}
	}
	b := strconv.AppendFloat(nil, f, format, -1, bits)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(b)
		if n >= 4 && b[n-4] == 'e' && b[n-3] == '-' && b[n-2] == '0' {
			b[n-2] = b[n-1]
			b = b[:n-1]
		}
	}
	return string(b)
}

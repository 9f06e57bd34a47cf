package jsonmap

import (
	"fmt"

	"github.com/cybergodev/jsonmap/internal"
)

// EscapePointer escapes a key for use as a JSON Pointer token
func EscapePointer(key string) string {
	return internal.EscapePointer(key)
}

// UnescapePointer reverses EscapePointer
func UnescapePointer(token string) string {
	return internal.UnescapePointer(token)
}

// Resolve returns the value pointer refers to in parsed data.
// Data is walked through *Object, map[string]any and []any.
func Resolve(data any, pointer string) (any, error) {
	tokens, ok := internal.SplitPointer(pointer)
	if !ok {
		return nil, newPathError("resolve", pointer, "malformed pointer", ErrInvalidPointer)
	}

	current := data
	for i, token := range tokens {
		next, found := step(current, token)
		if !found {
			at := pointerPrefix(tokens[:i+1])
			return nil, newPathError("resolve", pointer, fmt.Sprintf("no value at '%s'", at), ErrPointerNotFound)
		}
		current = next
	}
	return current, nil
}

func step(current any, token string) (any, bool) {
	switch v := current.(type) {
	case *Object:
		return v.Get(token)
	case map[string]any:
		value, ok := v[token]
		return value, ok
	case []any:
		index, ok := internal.ParseIndex(token)
		if !ok || index >= len(v) {
			return nil, false
		}
		return v[index], true
	default:
		return nil, false
	}
}

func pointerPrefix(tokens []string) string {
	ptr := ""
	for _, token := range tokens {
		ptr = internal.AppendKey(ptr, token)
	}
	return ptr
}

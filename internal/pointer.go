package internal

import (
	"strconv"
	"strings"
)

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// EscapePointer escapes a reference token for use in a JSON Pointer (RFC 6901)
func EscapePointer(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	return pointerEscaper.Replace(token)
}

// UnescapePointer reverses EscapePointer
func UnescapePointer(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	return pointerUnescaper.Replace(token)
}

// AppendKey extends a pointer with an object member name
func AppendKey(ptr, key string) string {
	return ptr + "/" + EscapePointer(key)
}

// AppendIndex extends a pointer with an array index
func AppendIndex(ptr string, index int) string {
	return ptr + "/" + strconv.Itoa(index)
}

// SplitPointer splits a pointer into unescaped reference tokens.
// The root pointer "" yields no tokens. It reports false for a pointer that
// does not start with '/' or holds a '~' not followed by '0' or '1'.
func SplitPointer(ptr string) ([]string, bool) {
	if ptr == "" {
		return nil, true
	}
	if ptr[0] != '/' {
		return nil, false
	}
	tokens := strings.Split(ptr[1:], "/")
	for i, token := range tokens {
		if !validEscapes(token) {
			return nil, false
		}
		tokens[i] = UnescapePointer(token)
	}
	return tokens, true
}

func validEscapes(token string) bool {
	for i := 0; i < len(token); i++ {
		if token[i] != '~' {
			continue
		}
		if i+1 >= len(token) || (token[i+1] != '0' && token[i+1] != '1') {
			return false
		}
		i++
	}
	return true
}

// ParseIndex parses an array index token. Leading zeros and signs are
// rejected, as in RFC 6901.
func ParseIndex(token string) (int, bool) {
	if token == "" || (len(token) > 1 && token[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(token); i++ {
		if !IsDigit(token[i]) {
			return 0, false
		}
	}
	index, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return index, true
}

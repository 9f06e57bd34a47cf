package jsonmap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybergodev/jsonmap/internal"
)

// TestHelper provides utilities for testing JSON operations
type TestHelper struct {
	t *testing.T
}

// NewTestHelper creates a new test helper
func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// AssertEqual checks if two values are equal
func (h *TestHelper) AssertEqual(expected, actual any, msgAndArgs ...any) {
	h.t.Helper()
	assert.Equal(h.t, expected, actual, msgAndArgs...)
}

// AssertTrue checks that condition is true
func (h *TestHelper) AssertTrue(condition bool, msgAndArgs ...any) {
	h.t.Helper()
	assert.True(h.t, condition, msgAndArgs...)
}

// AssertFalse checks that condition is false
func (h *TestHelper) AssertFalse(condition bool, msgAndArgs ...any) {
	h.t.Helper()
	assert.False(h.t, condition, msgAndArgs...)
}

// AssertNotNil checks that value is not nil
func (h *TestHelper) AssertNotNil(value any, msgAndArgs ...any) {
	h.t.Helper()
	assert.NotNil(h.t, value, msgAndArgs...)
}

// AssertNoError fails the test immediately if err is not nil
func (h *TestHelper) AssertNoError(err error, msgAndArgs ...any) {
	h.t.Helper()
	require.NoError(h.t, err, msgAndArgs...)
}

// AssertErrorIs checks that err matches target in its chain
func (h *TestHelper) AssertErrorIs(err, target error, msgAndArgs ...any) {
	h.t.Helper()
	assert.ErrorIs(h.t, err, target, msgAndArgs...)
}

// AssertPointers compares two pointer maps and prints a diff on mismatch
func (h *TestHelper) AssertPointers(expected, actual Pointers) {
	h.t.Helper()
	if diff := cmp.Diff(expected, actual); diff != "" {
		h.t.Errorf("pointer maps differ (-want +got):\n%s", diff)
	}
}

// AssertSpans checks every entry against text: each value span decodes to
// the value the pointer resolves to in data, and each key span decodes to
// the last reference token of the pointer. Spans are decoded with an
// independent decoder.
func (h *TestHelper) AssertSpans(text string, pointers Pointers, data any) {
	h.t.Helper()
	json := jsoniter.ConfigCompatibleWithStandardLibrary
	for _, ptr := range pointers.Paths() {
		entry := pointers[ptr]
		assert.LessOrEqual(h.t, entry.Value.LinePos, entry.Value.Pos, ptr)
		assert.LessOrEqual(h.t, entry.Value.Pos, entry.ValueEnd.Pos, ptr)

		if entry.HasKey() {
			tokens, ok := internal.SplitPointer(ptr)
			require.True(h.t, ok, ptr)
			require.NotEmpty(h.t, tokens, ptr)
			var key string
			require.NoError(h.t, json.Unmarshal([]byte(text[entry.Key.Pos:entry.KeyEnd.Pos]), &key), ptr)
			assert.Equal(h.t, tokens[len(tokens)-1], key, ptr)
		}

		want, err := Resolve(data, ptr)
		require.NoError(h.t, err, ptr)
		var got any
		require.NoError(h.t, json.Unmarshal([]byte(text[entry.Value.Pos:entry.ValueEnd.Pos]), &got), ptr)
		assert.Equal(h.t, Plain(want), got, ptr)
	}
}

// at builds a location on a line that holds no tabs or multibyte text
func at(line, column, pos int) Location {
	return Location{Line: line, Column: column, Pos: pos, LinePos: pos - column}
}

func memberEntry(key, keyEnd, value, valueEnd Location) *PointerEntry {
	return &PointerEntry{Value: value, ValueEnd: valueEnd, Key: &key, KeyEnd: &keyEnd}
}

func elementEntry(value, valueEnd Location) *PointerEntry {
	return &PointerEntry{Value: value, ValueEnd: valueEnd}
}

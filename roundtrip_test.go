package jsonmap

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Texts in the layout Stringify produces parse into data that stringifies
// back to the same text and the same pointer map.
func TestParseStringifyReciprocity(t *testing.T) {
	tests := []struct {
		name  string
		json  string
		space any
	}{
		{"scalar", "true", nil},
		{"string", `"foo\\bar\n"`, nil},
		{"nested compact", `{"foo":[{"bar":true},{"baz":123,"quux":"hello"}]}`, nil},
		{"nested indented", nestedJSON, 2},
		{"tabs", "{\n\t\"foo\": [\n\t\t{\n\t\t\t\"bar\": true\n\t\t}\n\t]\n}", "\t"},
		{"crlf", "[\n\r\n1,\n\r\n2\n]", "\r\n"},
		{"multibyte", "{\n  \"clé\": \"日本語\",\n  \"😀\": []\n}", 2},
		{"empty containers", "[\n {},\n []\n]", 1},
		{"big integer", `[9007199254740993,-0,1e+21]`, nil},
		{"escaped keys", `{"a/b":{"~":null}}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			helper := NewTestHelper(t)
			parsed, err := Parse(tt.json)
			helper.AssertNoError(err)

			result, err := Stringify(parsed.Data, &StringifyOptions{Space: tt.space})
			helper.AssertNoError(err)
			helper.AssertEqual(tt.json, result.JSON)
			helper.AssertPointers(parsed.Pointers, result.Pointers)
		})
	}
}

func TestStringifyParseReciprocity(t *testing.T) {
	values := []any{
		ObjectOf("a", []any{1.5, "x", nil, false}, "b", ObjectOf()),
		map[string]any{"z": []string{"é", "\t"}, "a": map[string]int{"n": -3}},
		[]any{"line\nbreak", "tab\there", ObjectOf("k/~", true)},
		struct {
			ID    int      `json:"id"`
			Tags  []string `json:"tags"`
			Owner *Object  `json:"owner"`
		}{ID: 7, Tags: []string{"a"}, Owner: ObjectOf("name", "x")},
	}
	for _, space := range []any{nil, 2, "\t", "\r\n "} {
		for i, value := range values {
			result, err := Stringify(value, &StringifyOptions{Space: space})
			require.NoError(t, err, "value %d", i)

			parsed, err := Parse(result.JSON)
			require.NoError(t, err, "value %d", i)
			NewTestHelper(t).AssertPointers(result.Pointers, parsed.Pointers)
			NewTestHelper(t).AssertSpans(parsed.Source(), parsed.Pointers, parsed.Data)

			for _, ptr := range result.Pointers.Paths() {
				emitted, _ := result.Span(ptr)
				source, _ := parsed.Span(ptr)
				assert.Equal(t, emitted, source, ptr)
			}
		}
	}
}

func TestBigIntRoundTrip(t *testing.T) {
	n, _ := new(big.Int).SetString("-123456789012345678901234567890", 10)
	result, err := Stringify([]any{n, big.NewInt(100)})
	require.NoError(t, err)
	assert.Equal(t, "[-123456789012345678901234567890,100]", result.JSON)

	parsed, err := Parse(result.JSON)
	require.NoError(t, err)
	arr := parsed.Data.([]any)
	require.True(t, IsBigInt(arr[0]))
	assert.Zero(t, n.Cmp(arr[0].(*big.Int)))
	assert.Equal(t, 100.0, arr[1])
}

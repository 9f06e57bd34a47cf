// Package jsonmap provides a JSON parser and stringifier that, besides the
// decoded value or the encoded text, report where every value lives in the
// text.
//
// Both directions produce a Pointers map from each JSON Pointer (RFC 6901)
// reachable in the document to the Location of its value and, for object
// members, of its key:
//
//	result, err := jsonmap.Parse(`{"foo":[{"bar":true}]}`)
//	entry := result.Pointers["/foo/0/bar"]
//	fmt.Println(entry.Value.Line, entry.Value.Column) // 1 15
//
//	out, err := jsonmap.Stringify(data, &jsonmap.StringifyOptions{Space: 2})
//	fmt.Println(out.JSON)
//
// Stringifying parsed data with the formatting of the source reproduces the
// source text byte for byte, and the two pointer maps are equal.
//
// # Locations
//
// Lines are 1-based. Columns are 0-based and count runes, where a tab
// counts as four columns and a carriage return starts the count over.
// Pos is the byte offset into the text, so text[e.Value.Pos:e.ValueEnd.Pos]
// is the source of a value.
//
// # Parsed values
//
// Parse produces nil, bool, float64, *big.Int (integer literals outside
// ±(2^53-1)), string, []any and *Object, an insertion-ordered object.
//
// # Configuration
//
// A Processor carries a Config with a default indent, an input size limit,
// a filesystem for ParseFile and WriteFile, and a slog logger:
//
//	cfg := jsonmap.DefaultConfig()
//	cfg.Space = "\t"
//	processor, err := jsonmap.New(cfg)
package jsonmap

package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybergodev/jsonmap"
)

const doc = `{"foo":[{"bar":true}]}`

func run(t *testing.T, fs afero.Fs, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	gs := newState(fs, strings.NewReader(stdin), &stdout, &stderr, false)
	code := execute(gs, args)
	return code, stdout.String(), stderr.String()
}

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func TestParseCommand(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		fs := memFs(t, map[string]string{"doc.json": doc})
		code, stdout, stderr := run(t, fs, "", "parse", "doc.json")
		require.Equal(t, 0, code, stderr)

		var pointers map[string]jsonmap.PointerEntry
		require.NoError(t, json.Unmarshal([]byte(stdout), &pointers))
		assert.Len(t, pointers, 4)
		assert.Equal(t, jsonmap.Location{Line: 1, Column: 15, Pos: 15}, pointers["/foo/0/bar"].Value)
		assert.Equal(t, jsonmap.Location{Line: 1, Column: 19, Pos: 19}, pointers["/foo/0/bar"].ValueEnd)
		assert.Nil(t, pointers[""].Key)
		require.NotNil(t, pointers["/foo"].Key)
		assert.Equal(t, 1, pointers["/foo"].Key.Column)
	})

	t.Run("yaml from stdin", func(t *testing.T) {
		code, stdout, stderr := run(t, afero.NewMemMapFs(), doc, "parse", "--output", "yaml")
		require.Equal(t, 0, code, stderr)
		assert.Contains(t, stdout, "/foo/0/bar:")
		assert.Contains(t, stdout, "column: 15")
	})

	t.Run("unknown format", func(t *testing.T) {
		code, _, stderr := run(t, afero.NewMemMapFs(), doc, "parse", "-o", "xml")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, `unknown output format "xml"`)
	})

	t.Run("syntax error", func(t *testing.T) {
		code, _, stderr := run(t, afero.NewMemMapFs(), `{"a":}`, "parse")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, `unexpected token "}" in JSON at line 1, column 5`)
		assert.Contains(t, stderr, "hint:")
	})

	t.Run("missing file", func(t *testing.T) {
		code, _, stderr := run(t, afero.NewMemMapFs(), "", "parse", "nope.json")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "reading nope.json")
	})
}

func TestLocateCommand(t *testing.T) {
	fs := memFs(t, map[string]string{
		"doc.json":  doc,
		"tabs.json": "{\n\t\"a\": 1\n}",
	})

	t.Run("value", func(t *testing.T) {
		code, stdout, stderr := run(t, fs, "", "locate", "doc.json", "/foo/0/bar")
		require.Equal(t, 0, code, stderr)
		lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "doc.json:1:15-1:19", lines[0])
		assert.Equal(t, "    1 | "+doc, lines[1])
		assert.Equal(t, "      | "+strings.Repeat(" ", 15)+"^^^^", lines[2])
	})

	t.Run("key", func(t *testing.T) {
		code, stdout, stderr := run(t, fs, "", "locate", "--key", "doc.json", "/foo")
		require.Equal(t, 0, code, stderr)
		assert.True(t, strings.HasPrefix(stdout, "doc.json:1:1-1:6\n"))
	})

	t.Run("tabs expand", func(t *testing.T) {
		code, stdout, stderr := run(t, fs, "", "locate", "tabs.json", "/a")
		require.Equal(t, 0, code, stderr)
		lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "tabs.json:2:9-2:10", lines[0])
		assert.Equal(t, `    2 |     "a": 1`, lines[1])
		assert.Equal(t, "      | "+strings.Repeat(" ", 9)+"^", lines[2])
	})

	t.Run("root has no key", func(t *testing.T) {
		code, _, stderr := run(t, fs, "", "locate", "-k", "doc.json", "")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "is not an object member")
	})

	t.Run("not found", func(t *testing.T) {
		code, _, stderr := run(t, fs, "", "locate", "doc.json", "/foo/1")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "pointer not found")
	})

	t.Run("arguments", func(t *testing.T) {
		code, _, _ := run(t, fs, "", "locate", "doc.json")
		assert.Equal(t, 1, code)
	})
}

func TestFmtCommand(t *testing.T) {
	t.Run("default indent", func(t *testing.T) {
		code, stdout, stderr := run(t, afero.NewMemMapFs(), `{"a":1}`, "fmt")
		require.Equal(t, 0, code, stderr)
		assert.Equal(t, "{\n  \"a\": 1\n}\n", stdout)
	})

	t.Run("compact", func(t *testing.T) {
		code, stdout, stderr := run(t, afero.NewMemMapFs(), `{ "a" : [1, 2], "b": -0 }`, "fmt", "--space", "0")
		require.Equal(t, 0, code, stderr)
		assert.Equal(t, "{\"a\":[1,2],\"b\":-0}\n", stdout)
	})

	t.Run("big integers and order", func(t *testing.T) {
		code, stdout, stderr := run(t, afero.NewMemMapFs(), `{"z":9007199254740993,"a":1}`, "fmt", "-s", "0")
		require.Equal(t, 0, code, stderr)
		assert.Equal(t, "{\"z\":9007199254740993,\"a\":1}\n", stdout)
	})

	t.Run("tab from environment", func(t *testing.T) {
		t.Setenv("JSONMAP_SPACE", `\t`)
		code, stdout, stderr := run(t, afero.NewMemMapFs(), `[true]`, "fmt")
		require.Equal(t, 0, code, stderr)
		assert.Equal(t, "[\n\ttrue\n]\n", stdout)
	})

	t.Run("invalid indent", func(t *testing.T) {
		code, _, stderr := run(t, afero.NewMemMapFs(), `[]`, "fmt", "--space", "$$")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, "whitespace characters not allowed in JSON")
	})

	t.Run("write", func(t *testing.T) {
		fs := memFs(t, map[string]string{"out/doc.json": doc})
		code, stdout, stderr := run(t, fs, "", "fmt", "-w", "-s", "1", "out/doc.json")
		require.Equal(t, 0, code, stderr)
		assert.Empty(t, stdout)

		data, err := afero.ReadFile(fs, "out/doc.json")
		require.NoError(t, err)
		assert.Equal(t, "{\n \"foo\": [\n  {\n   \"bar\": true\n  }\n ]\n}", string(data))
	})

	t.Run("write needs a file", func(t *testing.T) {
		code, _, stderr := run(t, afero.NewMemMapFs(), doc, "fmt", "-w")
		assert.Equal(t, 1, code)
		assert.Contains(t, stderr, errMissingFile.Error())
	})
}

func TestParseSpace(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"", nil},
		{"4", 4},
		{"-1", -1},
		{`\t`, "\t"},
		{`\r\n`, "\r\n"},
		{"  ", "  "},
	}
	for _, tt := range tests {
		got, err := parseSpace(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "raw %q", tt.raw)
	}
}

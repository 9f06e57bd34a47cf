package jsonmap

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"

	"github.com/cybergodev/jsonmap/internal"
)

// Config holds configuration for a Processor
type Config struct {
	// Space is the default indentation for Stringify: a number of spaces
	// or a whitespace string. Nil means compact output.
	Space any `json:"space"`

	// MaxJSONSize limits the input accepted by Parse, in bytes
	MaxJSONSize int64 `json:"max_json_size"`

	// ValidateFilePath rejects traversal sequences in ParseFile/WriteFile paths
	ValidateFilePath bool `json:"validate_file_path"`

	// Fs is the filesystem used by ParseFile and WriteFile
	Fs afero.Fs `json:"-"`

	// Logger receives structured operation logs
	Logger *slog.Logger `json:"-"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxJSONSize:      DefaultMaxJSONSize,
		ValidateFilePath: true,
		Fs:               afero.NewOsFs(),
	}
}

// ValidateConfig validates configuration values and applies corrections
func ValidateConfig(config *Config) error {
	if config == nil {
		return newOperationError("validate_config", "config cannot be nil", ErrOperationFailed)
	}
	if _, err := resolveIndent(config.Space); err != nil {
		return err
	}

	// Apply defaults for invalid values
	if config.MaxJSONSize <= 0 {
		config.MaxJSONSize = DefaultMaxJSONSize
	}
	if config.Fs == nil {
		config.Fs = afero.NewOsFs()
	}
	return nil
}

// StringifyOptions controls the layout of Stringify output
type StringifyOptions struct {
	// Space is either a number of spaces, clamped to 0-10 with any fraction
	// dropped, or a string of at most 10 spaces, tabs, CRs and LFs. Longer
	// strings are truncated. Nil, zero and "" produce compact output.
	Space any `json:"space"`
}

// resolveIndent turns a Space option into the indent unit written once per
// nesting level. An empty unit means compact output.
func resolveIndent(space any) (string, error) {
	if space == nil {
		return "", nil
	}
	v := reflect.ValueOf(space)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return spaces(clampWidth(float64(v.Int()))), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return spaces(clampWidth(float64(v.Uint()))), nil
	case reflect.Float32, reflect.Float64:
		return spaces(clampWidth(v.Float())), nil
	case reflect.String:
		return indentString(v.String())
	}
	return "", newOperationError("stringify_config",
		fmt.Sprintf("space must be a number or a string, got %T", space), ErrInvalidIndent)
}

func clampWidth(f float64) int {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= internal.MaxIndent:
		return internal.MaxIndent
	}
	return int(math.Trunc(f))
}

func spaces(n int) string {
	return strings.Repeat(" ", n)
}

func indentString(s string) (string, error) {
	if utf8.RuneCountInString(s) > internal.MaxIndent {
		n := 0
		for i := range s {
			if n == internal.MaxIndent {
				s = s[:i]
				break
			}
			n++
		}
	}
	for i := 0; i < len(s); i++ {
		if !internal.IsSpace(s[i]) {
			r, _ := utf8.DecodeRuneInString(s[i:])
			return "", newOperationError("stringify_config",
				fmt.Sprintf("%s: space contains %q", ErrInvalidIndent, r), ErrInvalidIndent)
		}
	}
	return s, nil
}

package jsonmap

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"
)

// ParseFile reads path from the configured filesystem and parses it
func (p *Processor) ParseFile(path string) (*ParseResult, error) {
	if err := p.validateFilePath(path); err != nil {
		p.logError("parse_file", path, err)
		return nil, err
	}

	if info, err := p.config.Fs.Stat(path); err == nil && info.Size() > p.config.MaxJSONSize {
		err := newSizeLimitError("parse_file", info.Size(), p.config.MaxJSONSize)
		p.logError("parse_file", path, err)
		return nil, err
	}

	data, err := afero.ReadFile(p.config.Fs, path)
	if err != nil {
		err = &JsonsError{
			Op:      "parse_file",
			Path:    path,
			Message: fmt.Sprintf("failed to read file %s", path),
			Err:     fmt.Errorf("read file error: %w", err),
		}
		p.logError("parse_file", path, err)
		return nil, err
	}

	return p.ParseBytes(data)
}

// WriteFile stringifies value and writes the text to path, creating
// parent directories as needed
func (p *Processor) WriteFile(path string, value any, opts ...*StringifyOptions) (*StringifyResult, error) {
	if err := p.validateFilePath(path); err != nil {
		p.logError("write_file", path, err)
		return nil, err
	}

	result, err := p.Stringify(value, opts...)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := p.config.Fs.MkdirAll(dir, 0o755); err != nil {
			err = &JsonsError{
				Op:      "write_file",
				Path:    path,
				Message: fmt.Sprintf("failed to create directory for %s", path),
				Err:     fmt.Errorf("directory creation error: %w", err),
			}
			p.logError("write_file", path, err)
			return nil, err
		}
	}

	if err := afero.WriteFile(p.config.Fs, path, []byte(result.JSON), 0o644); err != nil {
		err = &JsonsError{
			Op:      "write_file",
			Path:    path,
			Message: fmt.Sprintf("failed to write file %s", path),
			Err:     fmt.Errorf("write file error: %w", err),
		}
		p.logError("write_file", path, err)
		return nil, err
	}
	return result, nil
}

// validateFilePath rejects empty paths, NUL bytes and traversal sequences
func (p *Processor) validateFilePath(path string) error {
	if path == "" {
		return newOperationError("validate_file_path", "file path cannot be empty", ErrOperationFailed)
	}
	if !p.config.ValidateFilePath {
		return nil
	}
	if strings.Contains(path, "\x00") {
		return newSecurityError("validate_file_path", "null byte in path")
	}
	if containsPathTraversal(path) {
		return newSecurityError("validate_file_path", "path traversal pattern detected")
	}
	return nil
}

// containsPathTraversal checks for ".." segments, including NFC-normalized
// and URL-encoded forms
func containsPathTraversal(path string) bool {
	decoded := recursiveURLDecode(norm.NFC.String(path))

	for _, candidate := range []string{path, decoded} {
		candidate = strings.ReplaceAll(candidate, "\\", "/")
		for _, segment := range strings.Split(candidate, "/") {
			if segment == ".." {
				return true
			}
		}
	}

	lower := strings.ToLower(path)
	for _, pattern := range []string{"%2e%2e", "%252e", "%c0%ae", "%uff0e"} {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// recursiveURLDecode decodes up to three levels of URL encoding
func recursiveURLDecode(s string) string {
	decoded := s
	for i := 0; i < 3; i++ {
		next, err := url.PathUnescape(decoded)
		if err != nil || next == decoded {
			break
		}
		decoded = next
	}
	return decoded
}

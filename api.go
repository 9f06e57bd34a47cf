package jsonmap

import (
	"sync"
	"sync/atomic"
)

var (
	defaultProcessor   atomic.Pointer[Processor]
	defaultProcessorMu sync.Mutex
)

// getDefaultProcessor returns the global processor, creating it on first use
func getDefaultProcessor() *Processor {
	if p := defaultProcessor.Load(); p != nil {
		return p
	}

	defaultProcessorMu.Lock()
	defer defaultProcessorMu.Unlock()

	if p := defaultProcessor.Load(); p != nil {
		return p
	}

	// DefaultConfig always validates
	p, _ := New()
	defaultProcessor.Store(p)
	return p
}

// SetGlobalProcessor sets the processor used by the package-level functions
func SetGlobalProcessor(processor *Processor) {
	if processor == nil {
		return
	}
	defaultProcessor.Store(processor)
}

// Parse parses JSON text and maps every pointer to its location in text
func Parse(text string) (*ParseResult, error) {
	return getDefaultProcessor().Parse(text)
}

// ParseBytes is Parse for a byte slice
func ParseBytes(data []byte) (*ParseResult, error) {
	return getDefaultProcessor().ParseBytes(data)
}

// Stringify encodes value as JSON and maps every pointer to its location
// in the output
func Stringify(value any, opts ...*StringifyOptions) (*StringifyResult, error) {
	return getDefaultProcessor().Stringify(value, opts...)
}

// ParseFile reads and parses a JSON file
func ParseFile(path string) (*ParseResult, error) {
	return getDefaultProcessor().ParseFile(path)
}

// WriteFile stringifies value into a file
func WriteFile(path string, value any, opts ...*StringifyOptions) (*StringifyResult, error) {
	return getDefaultProcessor().WriteFile(path, value, opts...)
}

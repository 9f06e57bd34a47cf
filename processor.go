package jsonmap

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// Processor parses and stringifies with a fixed configuration. It holds
// no per-call state, so one Processor may serve concurrent callers.
type Processor struct {
	config  *Config
	indent  string
	logger  *slog.Logger
	metrics processorMetrics
}

type processorMetrics struct {
	operationCount atomic.Int64
	errorCount     atomic.Int64
}

// Stats provides processor operation counters
type Stats struct {
	OperationCount int64 `json:"operation_count"`
	ErrorCount     int64 `json:"error_count"`
}

// New creates a processor with the given configuration.
// If no configuration is provided, uses default configuration.
func New(config ...*Config) (*Processor, error) {
	var cfg *Config
	if len(config) > 0 && config[0] != nil {
		cfg = config[0]
	} else {
		cfg = DefaultConfig()
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	indent, err := resolveIndent(cfg.Space)
	if err != nil {
		return nil, err
	}

	p := &Processor{config: cfg, indent: indent}
	p.SetLogger(cfg.Logger)
	return p, nil
}

// GetConfig returns a copy of the processor configuration
func (p *Processor) GetConfig() *Config {
	configCopy := *p.config
	return &configCopy
}

// SetLogger sets a custom structured logger for the processor
func (p *Processor) SetLogger(logger *slog.Logger) {
	if logger != nil {
		p.logger = logger.With("component", "jsonmap-processor")
	} else {
		p.logger = slog.Default().With("component", "jsonmap-processor")
	}
}

// Stats returns the operation counters
func (p *Processor) Stats() Stats {
	return Stats{
		OperationCount: p.metrics.operationCount.Load(),
		ErrorCount:     p.metrics.errorCount.Load(),
	}
}

// Parse parses text and maps every pointer to its location in text
func (p *Processor) Parse(text string) (*ParseResult, error) {
	start := time.Now()
	p.metrics.operationCount.Add(1)

	if size := int64(len(text)); size > p.config.MaxJSONSize {
		err := newSizeLimitError("parse", size, p.config.MaxJSONSize)
		p.logError("parse", "", err)
		return nil, err
	}

	result, err := parse(text)
	if err != nil {
		p.logError("parse", "", err)
		return nil, err
	}
	p.logOperation("parse", len(text), len(result.Pointers), time.Since(start))
	return result, nil
}

// ParseBytes is Parse for a byte slice
func (p *Processor) ParseBytes(data []byte) (*ParseResult, error) {
	return p.Parse(string(data))
}

// Stringify encodes value and maps every pointer to its location in the
// output. Options override the configured Space.
func (p *Processor) Stringify(value any, opts ...*StringifyOptions) (*StringifyResult, error) {
	start := time.Now()
	p.metrics.operationCount.Add(1)

	indent := p.indent
	if len(opts) > 0 && opts[0] != nil {
		var err error
		if indent, err = resolveIndent(opts[0].Space); err != nil {
			p.logError("stringify", "", err)
			return nil, err
		}
	}

	result, err := stringify(value, indent)
	if err != nil {
		p.logError("stringify", "", err)
		return nil, err
	}
	p.logOperation("stringify", len(result.JSON), len(result.Pointers), time.Since(start))
	return result, nil
}

// logError logs an error with structured logging
func (p *Processor) logError(operation, path string, err error) {
	p.metrics.errorCount.Add(1)
	if p.logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("error", truncateString(err.Error(), maxLoggedErrorLength)),
		slog.Int64("error_count", p.metrics.errorCount.Load()),
		slog.String("processor_id", p.getProcessorID()),
	}
	if path != "" {
		attrs = append(attrs, slog.String("path", truncateString(path, maxLoggedPointerLength)))
	}

	switch e := err.(type) {
	case *SyntaxError:
		attrs = append(attrs, slog.Int("line", e.Line), slog.Int("column", e.Column))
	case *UnexpectedEndError:
		attrs = append(attrs, slog.Int("line", e.Line), slog.Int("column", e.Column))
	}
	p.logger.LogAttrs(context.Background(), slog.LevelError, "JSON operation failed", attrs...)
}

// logOperation logs a successful operation and warns about slow ones
func (p *Processor) logOperation(operation string, size, entries int, duration time.Duration) {
	if p.logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Int("bytes", size),
		slog.Int("pointers", entries),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.String("processor_id", p.getProcessorID()),
	}
	if duration > SlowOperationThreshold {
		attrs = append(attrs, slog.Int64("threshold_ms", SlowOperationThreshold.Milliseconds()))
		p.logger.LogAttrs(context.Background(), slog.LevelWarn, "Slow JSON operation detected", attrs...)
		return
	}
	p.logger.LogAttrs(context.Background(), slog.LevelDebug, "JSON operation completed", attrs...)
}

// getProcessorID returns a unique identifier for this processor instance
func (p *Processor) getProcessorID() string {
	return fmt.Sprintf("proc_%p", p)
}

// truncateString truncates a string with ellipsis
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

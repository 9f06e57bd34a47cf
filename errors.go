package jsonmap

import (
	"errors"
	"fmt"
)

// Core error definitions
var (
	// Parse errors
	ErrInvalidJSON   = errors.New("invalid JSON format")
	ErrUnexpectedEnd = errors.New("unexpected end of JSON input")

	// Stringify errors
	ErrUnexpectedType = errors.New("unexpected type")
	ErrInvalidIndent  = errors.New("whitespace characters not allowed in JSON")

	// Pointer errors
	ErrInvalidPointer  = errors.New("invalid JSON pointer")
	ErrPointerNotFound = errors.New("pointer not found")

	// Limit and operation errors
	ErrSizeLimit         = errors.New("size limit exceeded")
	ErrOperationFailed   = errors.New("operation failed")
	ErrSecurityViolation = errors.New("security violation detected")
)

// SyntaxError reports a character that violates the JSON grammar
type SyntaxError struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
	Token  string `json:"token"` // offending character
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("unexpected token \"%s\" in JSON at line %d, column %d", e.Token, e.Line, e.Column)
}

// Is matches ErrInvalidJSON
func (e *SyntaxError) Is(target error) bool {
	return target == ErrInvalidJSON
}

// UnexpectedEndError reports input that ended where a character was required
type UnexpectedEndError struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (e *UnexpectedEndError) Error() string {
	return fmt.Sprintf("unexpected end of JSON input (line %d, column %d)", e.Line, e.Column)
}

// Is matches ErrUnexpectedEnd and ErrInvalidJSON
func (e *UnexpectedEndError) Is(target error) bool {
	return target == ErrUnexpectedEnd || target == ErrInvalidJSON
}

// UnexpectedTypeError reports a top-level value Stringify cannot serialize
type UnexpectedTypeError struct {
	Kind string `json:"kind"`
}

func (e *UnexpectedTypeError) Error() string {
	return fmt.Sprintf("unexpected type '%s'", e.Kind)
}

// Is matches ErrUnexpectedType
func (e *UnexpectedTypeError) Is(target error) bool {
	return target == ErrUnexpectedType
}

// JsonsError represents a JSON processing error with essential context
type JsonsError struct {
	Op      string `json:"op"`      // Operation that failed
	Path    string `json:"path"`    // JSON pointer or file path where error occurred
	Message string `json:"message"` // Human-readable error message
	Err     error  `json:"err"`     // Underlying error
}

func (e *JsonsError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("JSON %s failed at '%s': %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("JSON %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error for error chain support
func (e *JsonsError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling
func (e *JsonsError) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*JsonsError); ok {
		return e.Op == targetErr.Op && e.Err == targetErr.Err
	}
	return errors.Is(e.Err, target)
}

// newOperationError creates a JsonsError for operation failures
func newOperationError(operation, message string, err error) error {
	return &JsonsError{
		Op:      operation,
		Message: message,
		Err:     err,
	}
}

// newPathError creates a JsonsError carrying a pointer or file path
func newPathError(operation, path, message string, err error) error {
	return &JsonsError{
		Op:      operation,
		Path:    path,
		Message: message,
		Err:     err,
	}
}

// newSizeLimitError creates a JsonsError for size limit violations
func newSizeLimitError(operation string, actual, limit int64) error {
	return &JsonsError{
		Op:      operation,
		Message: fmt.Sprintf("size %d exceeds limit %d", actual, limit),
		Err:     ErrSizeLimit,
	}
}

// newSecurityError creates a JsonsError for security violations
func newSecurityError(operation, message string) error {
	return &JsonsError{
		Op:      operation,
		Message: message,
		Err:     ErrSecurityViolation,
	}
}

// ErrorClassifier helps classify errors for better handling
type ErrorClassifier struct{}

// NewErrorClassifier creates a new error classifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// IsSyntaxError reports whether err is a parse error of either kind
func (ec *ErrorClassifier) IsSyntaxError(err error) bool {
	return errors.Is(err, ErrInvalidJSON)
}

// IsUserError determines if an error is caused by user input
func (ec *ErrorClassifier) IsUserError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidJSON):
		return true
	case errors.Is(err, ErrUnexpectedType):
		return true
	case errors.Is(err, ErrInvalidIndent):
		return true
	case errors.Is(err, ErrInvalidPointer):
		return true
	case errors.Is(err, ErrPointerNotFound):
		return true
	default:
		return false
	}
}

// GetErrorSuggestion provides helpful suggestions for common errors
func (ec *ErrorClassifier) GetErrorSuggestion(err error) string {
	switch {
	case errors.Is(err, ErrUnexpectedEnd):
		return "The input is truncated; check for a missing closing quote, bracket or brace"
	case errors.Is(err, ErrInvalidJSON):
		return "Fix the character at the reported line and column"
	case errors.Is(err, ErrUnexpectedType):
		return "Pass a value made of maps, slices, structs, strings, numbers and booleans"
	case errors.Is(err, ErrInvalidIndent):
		return "Use a number of spaces or a string of spaces, tabs, CR and LF"
	case errors.Is(err, ErrInvalidPointer):
		return "Pointers start with '/' and escape '~' as '~0' and '/' as '~1'"
	case errors.Is(err, ErrPointerNotFound):
		return "List the available pointers with Pointers.Paths()"
	case errors.Is(err, ErrSizeLimit):
		return "Reduce input size or increase MaxJSONSize in configuration"
	case errors.Is(err, ErrSecurityViolation):
		return "Review the file path for traversal sequences"
	default:
		return "Check the error message for specific details"
	}
}

// WrapError wraps an error with additional context
func WrapError(err error, op, message string) error {
	if err == nil {
		return nil
	}
	return newOperationError(op, message, err)
}

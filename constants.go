package jsonmap

import (
	"time"

	"github.com/cybergodev/jsonmap/internal"
)

const (
	// Safe-integer range of an IEEE 754 double
	MaxSafeInteger = 1<<53 - 1
	MinSafeInteger = -MaxSafeInteger

	// Limits
	DefaultMaxJSONSize = 64 * 1024 * 1024
	MaxIndentWidth     = internal.MaxIndent

	// Log attribute limits
	maxLoggedPointerLength = 100
	maxLoggedErrorLength   = 200
)

// SlowOperationThreshold is the duration above which operations are logged as warnings
const SlowOperationThreshold = 100 * time.Millisecond

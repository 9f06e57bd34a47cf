package internal

import (
	"bytes"
	"sync"
)

// Buffer pool for the stringifier
var encoderBufferPool = sync.Pool{
	New: func() any {
		buf := &bytes.Buffer{}
		buf.Grow(2048)
		return buf
	},
}

// GetEncoderBuffer gets a buffer from the pool
func GetEncoderBuffer() *bytes.Buffer {
	buf := encoderBufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutEncoderBuffer returns a buffer to the pool
func PutEncoderBuffer(buf *bytes.Buffer) {
	const maxPoolBufferSize = 64 * 1024
	if buf != nil && buf.Cap() <= maxPoolBufferSize {
		buf.Reset()
		encoderBufferPool.Put(buf)
	}
}

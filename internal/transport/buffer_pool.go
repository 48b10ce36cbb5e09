package transport

import "sync"

// bufferPool recycles 4096-byte receive buffers for callers of
// GetBuffer/PutBuffer. Recv itself reads into the slice its caller
// passes in, and the channel's read path allocates its own buffer, so
// nothing in this module draws from the pool today.
var bufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 4096)
		return &buf
	},
}

// GetBuffer returns a pointer to a 4096-byte buffer from the pool.
// Callers must return it with PutBuffer (use defer).
func GetBuffer() *[]byte {
	return bufferPool.Get().(*[]byte)
}

// PutBuffer zeroes and returns a buffer to the pool. The caller must
// not use the buffer again after calling this.
func PutBuffer(bufPtr *[]byte) {
	buf := *bufPtr
	for i := range buf {
		buf[i] = 0
	}
	bufferPool.Put(bufPtr)
}

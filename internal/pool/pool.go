// Package pool provides pooled scratch buffers for the parsers.
//
// Buffers are rented for the duration of one parse step and returned
// before the enclosing call completes. Returned buffers are not zeroed;
// callers must not read past the length they asked for.
package pool

import "sync"

var buffers = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 256)
		return &b
	},
}

// Rent returns a zero-length scratch buffer with capacity of at least n.
func Rent(n int) []byte {
	bp := buffers.Get().(*[]byte)
	b := *bp
	if cap(b) < n {
		b = make([]byte, 0, n)
	}
	return b[:0]
}

// Return gives a buffer back to the pool. The caller must not use the
// buffer afterwards.
func Return(b []byte) {
	b = b[:0]
	buffers.Put(&b)
}

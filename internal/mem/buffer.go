// Package mem provides pooled scratch buffers for bulk archive I/O.
//
// Buffers are scoped to a single load or store call: acquired at the start,
// released on every exit path. Release returns the backing array to a pool
// so repeated loads of similarly sized archives do not reallocate.
package mem

import "sync"

var pool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 64*1024)
		return &b
	},
}

// Buffer is a length-checked scratch byte region.
type Buffer struct {
	backing *[]byte
	data    []byte
}

// Acquire returns a buffer of exactly n bytes. A zero-length buffer carries
// no backing allocation.
func Acquire(n int) *Buffer {
	if n <= 0 {
		return &Buffer{}
	}
	backing := pool.Get().(*[]byte)
	if cap(*backing) < n {
		b := make([]byte, n)
		*backing = b
	}
	return &Buffer{
		backing: backing,
		data:    (*backing)[:n:n],
	}
}

// Bytes returns the buffer contents. The slice is valid until Release.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the buffer length.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Release returns the backing array to the pool. It is safe to call on a
// zero-length buffer and must not be called twice.
func (b *Buffer) Release() {
	if b.backing == nil {
		return
	}
	*b.backing = (*b.backing)[:0]
	pool.Put(b.backing)
	b.backing = nil
	b.data = nil
}

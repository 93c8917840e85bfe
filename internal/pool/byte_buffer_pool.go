// Package pool provides the pooled append buffer the table encoder
// assembles uncompressed data sections in.
package pool

import "sync"

const (
	tableBufferSize = 16 * 1024
	// Buffers that grew past this are not returned to the pool.
	tableBufferMaxRetained = 128 * 1024
)

// ByteBuffer is an append-oriented byte buffer. The encoder appends to B
// directly for single-byte and variable-width writes.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a buffer with the given initial capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffer contents.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Len returns the number of bytes written so far.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Reset empties the buffer, keeping the allocation for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// MustWrite appends data, growing as needed.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// ByteBufferPool recycles ByteBuffers across encoder calls. Buffers whose
// capacity exceeds maxRetained are dropped instead of pooled, so one huge
// table does not pin its buffer forever.
type ByteBufferPool struct {
	pool        sync.Pool
	maxRetained int
}

// NewByteBufferPool creates a pool handing out buffers of the given initial
// capacity, discarding returned buffers larger than maxRetained.
func NewByteBufferPool(capacity, maxRetained int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(capacity)
			},
		},
		maxRetained: maxRetained,
	}
}

// Get takes a reset buffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a buffer to the pool. Nil and oversized buffers are dropped.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxRetained > 0 && cap(bb.B) > p.maxRetained {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var tablePool = NewByteBufferPool(tableBufferSize, tableBufferMaxRetained)

// GetTableBuffer takes a buffer from the shared encoder pool.
func GetTableBuffer() *ByteBuffer {
	return tablePool.Get()
}

// PutTableBuffer returns a buffer to the shared encoder pool.
func PutTableBuffer(bb *ByteBuffer) {
	tablePool.Put(bb)
}

package buffer

import "sync"

// Complex is a reusable complex128 scratch array.
type Complex struct {
	data []complex128
}

// Data returns the underlying slice.
func (b *Complex) Data() []complex128 { return b.data }

// Len returns the current length.
func (b *Complex) Len() int { return len(b.data) }

// Cap returns the capacity of the backing array.
func (b *Complex) Cap() int { return cap(b.data) }

// resize sets the length to n, reusing capacity when possible, and zeroes
// every element.
func (b *Complex) resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= cap(b.data) {
		b.data = b.data[:n]
	} else {
		b.data = make([]complex128, n)
	}
	clear(b.data)
}

// Pool hands out zeroed Complex buffers. It is safe for concurrent use.
type Pool struct {
	pool sync.Pool
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any { return &Complex{} },
		},
	}
}

// Get returns a zeroed buffer of length n. Return it with Put.
func (p *Pool) Get(n int) *Complex {
	b := p.pool.Get().(*Complex)
	b.resize(n)
	return b
}

// Put returns b to the pool. b must not be used afterwards.
func (p *Pool) Put(b *Complex) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}

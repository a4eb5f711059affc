// Package pool provides object pooling for the option parser
// Used by optset for token work stacks and help rendering buffers
package pool

import (
	"sync"
)

// Pool provides a generic, type-safe object pool
type Pool[T any] struct {
	pool    sync.Pool
	reset   func(*T)     // Optional reset function called before reuse
	maxSize int          // Maximum objects to keep (0 = unlimited)
	count   int64        // Current pool size (approximate)
	mutex   sync.RWMutex // Protects count and maxSize
}

// NewPool creates a new generic pool with the given factory function
func NewPool[T any](factory func() *T) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return factory()
			},
		},
	}
}

// NewPoolWithReset creates a pool with a reset function called before reuse
func NewPoolWithReset[T any](factory func() *T, reset func(*T)) *Pool[T] {
	p := NewPool(factory)
	p.reset = reset
	return p
}

// Get retrieves an object from the pool or creates a new one
func (p *Pool[T]) Get() *T {
	obj := p.pool.Get().(*T)
	if p.reset != nil {
		p.reset(obj)
	}

	p.mutex.Lock()
	if p.maxSize > 0 && p.count > 0 {
		p.count--
	}
	p.mutex.Unlock()

	return obj
}

// Put returns an object to the pool for reuse
func (p *Pool[T]) Put(obj *T) {
	if obj == nil {
		return
	}

	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.maxSize > 0 {
		if p.count >= int64(p.maxSize) {
			return
		}
		p.count++
	}
	p.pool.Put(obj)
}

// SetMaxSize sets the maximum number of objects to keep in the pool
func (p *Pool[T]) SetMaxSize(size int) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.maxSize = size
}

// Stats returns approximate pool statistics
func (p *Pool[T]) Stats() (count int64, maxSize int) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return p.count, p.maxSize
}

// StringSlicePool pools string slices.
// Slices whose capacity grew past maxCap are dropped instead of kept.
type StringSlicePool struct {
	*Pool[[]string]
	maxCap int
}

// NewStringSlicePool creates a new string slice pool
func NewStringSlicePool(defaultCap, maxCap int) *StringSlicePool {
	return &StringSlicePool{
		Pool: NewPoolWithReset(
			func() *[]string {
				slice := make([]string, 0, defaultCap)
				return &slice
			},
			func(slice *[]string) {
				clear(*slice)         // drop references to old tokens
				*slice = (*slice)[:0] // Reset length but keep capacity
			},
		),
		maxCap: maxCap,
	}
}

// Put returns a slice to the pool unless it grew too large
func (sp *StringSlicePool) Put(slice *[]string) {
	if slice == nil || (sp.maxCap > 0 && cap(*slice) > sp.maxCap) {
		return
	}
	sp.Pool.Put(slice)
}

// BufferPool pools byte buffers for rendering help and error text
type BufferPool struct {
	*Pool[[]byte]
	maxCap int
}

// NewBufferPool creates a new buffer pool
func NewBufferPool(defaultCap, maxCap int) *BufferPool {
	return &BufferPool{
		Pool: NewPoolWithReset(
			func() *[]byte {
				buf := make([]byte, 0, defaultCap)
				return &buf
			},
			func(buf *[]byte) {
				*buf = (*buf)[:0]
			},
		),
		maxCap: maxCap,
	}
}

// Put returns a buffer to the pool unless it grew too large
func (bp *BufferPool) Put(buf *[]byte) {
	if buf == nil || (bp.maxCap > 0 && cap(*buf) > bp.maxCap) {
		return
	}
	bp.Pool.Put(buf)
}

// Global pool instances
var (
	// token work stacks for the parse loop
	GlobalTokenPool = NewStringSlicePool(32, 1024)

	// help and usage rendering
	GlobalBufferPool = NewBufferPool(512, 64*1024)
)

// GetTokens retrieves an empty token slice
func GetTokens() *[]string {
	return GlobalTokenPool.Get()
}

// PutTokens returns a token slice to the global pool
func PutTokens(slice *[]string) {
	GlobalTokenPool.Put(slice)
}

// GetBuffer retrieves an empty byte buffer
func GetBuffer() *[]byte {
	return GlobalBufferPool.Get()
}

// PutBuffer returns a buffer to the global pool
func PutBuffer(buf *[]byte) {
	GlobalBufferPool.Put(buf)
}

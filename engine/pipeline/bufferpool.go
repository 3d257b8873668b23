package pipeline

import (
	"log"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

// poolable is implemented by *StagingBuffer and *StorageBuffer. It lets pool
// scan and grow a set of buffers of either kind generically, matching the
// teacher's existing use of Go generics in common.Coalesce.
type poolable interface {
	readyFlag() *ReadyFlag
	byteSize() uint64
}

// pool is a grow-on-demand set of same-size GPU buffers, owned by exactly one
// goroutine (the one that calls request). Buffers it hands out are shared
// across goroutines via their ReadyFlag.
type pool[T poolable] struct {
	mu         sync.Mutex
	bufferSize uint64
	buffers    []T
	allocate   func(size uint64) (T, error)
	retain     bool
	label      string
}

// newPool constructs a pool with the given allocator, initial buffer size,
// and retention policy. retain=false yields one-shot buffers that are never
// stored back into the pool's set (only the storage pool may use this mode;
// staging MUST retain, per the allocator contract).
func newPool[T poolable](label string, initialSize uint64, retain bool, allocate func(size uint64) (T, error)) *pool[T] {
	return &pool[T]{
		bufferSize: initialSize,
		allocate:   allocate,
		retain:     retain,
		label:      label,
	}
}

// request returns a buffer with capacity at least minSize (if minSize > 0),
// growing the pool's buffer_size by doubling and discarding the existing
// buffer set if needed. It then scans for a ready buffer to reacquire,
// falling back to allocating a new one at the pool's current size.
func (p *pool[T]) request(minSize uint64) (T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if minSize > 0 {
		for p.bufferSize < minSize {
			p.bufferSize *= 2
			if len(p.buffers) > 0 {
				log.Printf("[%s pool] growing buffer_size to %d, dropping %d pooled buffer(s)", p.label, p.bufferSize, len(p.buffers))
			}
			p.buffers = nil
		}
	}

	for _, b := range p.buffers {
		if b.readyFlag().Acquire() {
			return b, nil
		}
	}

	buf, err := p.allocate(p.bufferSize)
	if err != nil {
		var zero T
		return zero, err
	}
	buf.readyFlag().Acquire()
	if p.retain {
		p.buffers = append(p.buffers, buf)
	}
	return buf, nil
}

// BufferSize returns the pool's current, monotonically non-decreasing buffer size.
func (p *pool[T]) BufferSize() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.bufferSize
}

// StagingPool reuses host-mapped, CPU-writable GPU buffers. It always
// retains buffers in its set since staging buffers carry expensive
// host-mapping state.
type StagingPool struct {
	*pool[*StagingBuffer]
	device *wgpu.Device
}

// NewStagingPool creates a staging pool seeded at initialSize bytes.
func NewStagingPool(device *wgpu.Device, initialSize uint64) *StagingPool {
	sp := &StagingPool{device: device}
	sp.pool = newPool("staging", initialSize, true, func(size uint64) (*StagingBuffer, error) {
		return createStagingBuffer(device, size)
	})
	return sp
}

// Request acquires or allocates a staging buffer with capacity at least
// minSize bytes (0 means "any size").
func (sp *StagingPool) Request(minSize uint64) (*StagingBuffer, error) {
	return sp.request(minSize)
}

// StoragePool reuses device-local storage buffers bound at binding 0 of a
// fixed bind group layout. Retention is set by NewStoragePool's retain
// argument (the engine passes true unless WithStorageRetain says otherwise);
// false hands out one-shot buffers if benchmarking shows pooled reuse isn't a
// win for this buffer kind (spec leaves this an explicit open tuning question).
type StoragePool struct {
	*pool[*StorageBuffer]
	device *wgpu.Device
	layout *wgpu.BindGroupLayout
}

// NewStoragePool creates a storage pool seeded at initialSize bytes, binding
// every allocated buffer against layout.
func NewStoragePool(device *wgpu.Device, layout *wgpu.BindGroupLayout, initialSize uint64, retain bool) *StoragePool {
	sp := &StoragePool{device: device, layout: layout}
	sp.pool = newPool("storage", initialSize, retain, func(size uint64) (*StorageBuffer, error) {
		return createStorageBuffer(device, layout, size)
	})
	return sp
}

// Request acquires or allocates a storage buffer with capacity at least
// minSize bytes (0 means "any size").
func (sp *StoragePool) Request(minSize uint64) (*StorageBuffer, error) {
	return sp.request(minSize)
}

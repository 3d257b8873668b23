package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeBuffer is a minimal poolable used to exercise pool[T]'s growth/retention
// logic without a real GPU device.
type fakeBuffer struct {
	flag  *ReadyFlag
	size  uint64
	epoch int
}

func (b *fakeBuffer) readyFlag() *ReadyFlag { return b.flag }
func (b *fakeBuffer) byteSize() uint64      { return b.size }

func newFakePool(initialSize uint64, retain bool) (*pool[*fakeBuffer], *int) {
	allocCount := 0
	p := newPool("fake", initialSize, retain, func(size uint64) (*fakeBuffer, error) {
		allocCount++
		return &fakeBuffer{flag: NewReadyFlag(false), size: size, epoch: allocCount}, nil
	})
	return p, &allocCount
}

func TestPool_RequestReturnsBufferAtLeastMinSize(t *testing.T) {
	p, _ := newFakePool(32, true)

	buf, err := p.request(100)
	require.NoError(t, err)
	require.GreaterOrEqual(t, buf.byteSize(), uint64(100))
}

func TestPool_BufferSizeMonotonicNonDecreasing(t *testing.T) {
	p, _ := newFakePool(32, true)

	sizes := []uint64{0, 50, 200, 10, 1000}
	var last uint64
	for _, s := range sizes {
		_, err := p.request(s)
		require.NoError(t, err)
		current := p.BufferSize()
		require.GreaterOrEqual(t, current, last)
		last = current
	}
}

func TestPool_GrowthDoublesUntilSufficient(t *testing.T) {
	p, _ := newFakePool(32, true)

	_, err := p.request(100)
	require.NoError(t, err)
	// 32 -> 64 -> 128, first power-of-two-multiple of 32 >= 100.
	require.Equal(t, uint64(128), p.BufferSize())
}

func TestPool_RetainingPoolReacquiresReleasedBuffer(t *testing.T) {
	p, allocCount := newFakePool(32, true)

	buf, err := p.request(0)
	require.NoError(t, err)
	require.Equal(t, 1, *allocCount)

	buf.readyFlag().Release()

	again, err := p.request(0)
	require.NoError(t, err)
	require.Equal(t, buf, again, "expected scan to reacquire the released buffer instead of allocating")
	require.Equal(t, 1, *allocCount, "no new allocation should have occurred")
}

func TestPool_NonRetainingPoolAlwaysAllocates(t *testing.T) {
	p, allocCount := newFakePool(32, false)

	buf, err := p.request(0)
	require.NoError(t, err)
	buf.readyFlag().Release()

	_, err = p.request(0)
	require.NoError(t, err)
	require.Equal(t, 2, *allocCount, "non-retaining pool must never reuse a prior buffer")
}

func TestPool_GrowthDropsStalePooledBuffers(t *testing.T) {
	p, allocCount := newFakePool(32, true)

	buf, err := p.request(0)
	require.NoError(t, err)
	buf.readyFlag().Release()
	require.Equal(t, 1, *allocCount)

	// A request demanding more than the current size forces growth, which
	// must discard the old (too-small) pooled buffer rather than hand it out.
	next, err := p.request(1000)
	require.NoError(t, err)
	require.NotEqual(t, buf, next)
	require.GreaterOrEqual(t, next.byteSize(), uint64(1000))
}

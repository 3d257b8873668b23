package pipeline

import (
	"log"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/cogentcore/webgpu/wgpu"
)

// QuadMutator mutates the quad array in place for one iteration. It receives
// the full slice so sequential callers can treat the array as a whole, but
// when run through the parallel path each invocation only ever touches the
// [start, end) slice handed to it.
type QuadMutator func(quads []Quad, start, end int)

// UIWorker owns a staging BufferPool, the live quad array, and the send end
// of the UI→Transfer handoff. It is the densest of the three stages: each
// iteration serializes the quad array into a host-mapped staging buffer and
// tries to hand it downstream without ever blocking on the consumer.
type UIWorker struct {
	pool   *StagingPool
	out    *BoundedHandoff[UIMessage]
	mutate QuadMutator

	quads       []Quad
	alive       atomic.Bool
	computePool worker.DynamicWorkerPool
	parallelMin int // below this instance count, mutate sequentially
	stats       Stats
}

// NewUIWorker constructs a UIWorker with an initial quad array, a mutator
// applied once per iteration, and the send end of the handoff to Transfer.
// parallelMin is the instance-count threshold at or above which quad mutation is
// opportunistically spread across a persistent worker pool (spec's "MAY be
// parallelized" note); pass 0 to always mutate sequentially.
func NewUIWorker(pool *StagingPool, out *BoundedHandoff[UIMessage], initial []Quad, mutate QuadMutator, parallelMin int) *UIWorker {
	u := &UIWorker{
		pool:        pool,
		out:         out,
		mutate:      mutate,
		quads:       initial,
		parallelMin: parallelMin,
	}
	u.alive.Store(true)
	if parallelMin > 0 {
		u.computePool = worker.NewDynamicWorkerPool(runtime.NumCPU(), 256, time.Second)
	}
	return u
}

// SetQuads replaces the live quad array, e.g. when the demo ramps instance count.
func (u *UIWorker) SetQuads(quads []Quad) {
	u.quads = quads
}

// Run is the UIWorker's long-lived loop. It exits when the alive flag is
// cleared, printing its timing stats before returning.
func (u *UIWorker) Run() {
	for u.alive.Load() {
		start := time.Now()
		u.iterate()
		u.stats.Update(time.Since(start).Seconds())
	}
	log.Printf("├─ ui : %s", u.stats.String())
}

func (u *UIWorker) iterate() {
	numBytes := uint64(len(u.quads)) * QuadSize

	staging, err := u.pool.Request(numBytes)
	if err != nil {
		log.Printf("[ui worker] staging allocation failed: %v", err)
		return
	}

	u.mutateQuads()

	mapped := staging.Buffer.GetMappedRange(0, numBytes)
	copy(mapped, QuadsToBytes(u.quads))
	if err := staging.Buffer.Unmap(); err != nil {
		log.Printf("[ui worker] unmap failed: %v", err)
	}

	switch u.out.TrySend(UIMessage{Staging: staging, NumInstances: len(u.quads)}) {
	case Delivered:
	case Full:
		// Transfer hasn't consumed the prior message. The new buffer is
		// dropped on the floor; it was unmapped above, so it is remapped
		// first and its flag is released only once the map succeeds, so the
		// pool never hands out an unmapped staging buffer as ready.
		staging.Buffer.MapAsync(wgpu.MapModeWrite, 0, staging.Size, func(status wgpu.BufferMapAsyncStatus) {
			if status != wgpu.BufferMapAsyncStatusSuccess {
				log.Printf("[ui worker] staging remap failed: status=%v", status)
				return
			}
			staging.Ready.Release()
		})
	case Closed:
		u.alive.Store(false)
	}
}

func (u *UIWorker) mutateQuads() {
	n := len(u.quads)
	if u.computePool == nil || n < u.parallelMin {
		u.mutate(u.quads, 0, n)
		return
	}

	chunks := runtime.NumCPU()
	if chunks > n {
		chunks = n
	}
	chunkSize := (n + chunks - 1) / chunks

	var barrier sync.WaitGroup
	for c := 0; c < chunks; c++ {
		start := c * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		barrier.Add(1)
		s, e := start, end
		u.computePool.SubmitTask(worker.Task{
			ID: c,
			Do: func() (any, error) {
				defer barrier.Done()
				u.mutate(u.quads, s, e)
				return nil, nil
			},
		})
	}
	barrier.Wait()
}

// Stop clears the alive flag; the loop observes it at the top of its next iteration.
// It is called from the TransferWorker's goroutine, so it marks the handoff
// closed with CloseReceive rather than closing the channel under a
// concurrent TrySend.
func (u *UIWorker) Stop() {
	u.alive.Store(false)
	u.out.CloseReceive()
}

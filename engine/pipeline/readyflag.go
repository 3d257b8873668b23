package pipeline

import "sync/atomic"

// ReadyFlag is a single atomic boolean signaling that a pooled buffer is free
// for re-acquisition. Every writer — the owning pool, the stage that borrows
// the buffer, and GPU-completion callbacks running on driver-owned threads —
// touches the same flag, so all transitions go through sequentially consistent
// atomic operations rather than a mutex.
type ReadyFlag struct {
	ready atomic.Bool
}

// NewReadyFlag returns a flag in the given initial state.
func NewReadyFlag(ready bool) *ReadyFlag {
	f := &ReadyFlag{}
	f.ready.Store(ready)
	return f
}

// Acquire atomically reads the flag and, if true, clears it in the same step.
// Reports whether the acquisition succeeded. Callers that fail to acquire a
// buffer must try the next one or allocate — Acquire never blocks.
func (f *ReadyFlag) Acquire() bool {
	return f.ready.CompareAndSwap(true, false)
}

// Release marks the buffer ready for the next acquirer.
func (f *ReadyFlag) Release() {
	f.ready.Store(true)
}

// Ready reports the flag's current value without modifying it. Intended for
// tests and diagnostics — production code should use Acquire, not a
// check-then-acquire pair, to avoid races against other acquirers.
func (f *ReadyFlag) Ready() bool {
	return f.ready.Load()
}

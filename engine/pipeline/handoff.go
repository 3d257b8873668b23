package pipeline

import (
	"sync"
	"sync/atomic"
)

// UIMessage is the Pipeline Message passed from UIWorker to TransferWorker.
type UIMessage struct {
	Staging      *StagingBuffer
	NumInstances int
}

// TransferMessage is the Pipeline Message passed from TransferWorker to RenderDriver.
type TransferMessage struct {
	Storage      *StorageBuffer
	NumInstances int
}

// SendResult classifies the outcome of a non-blocking TrySend.
type SendResult int

const (
	// Delivered means the message was placed in the handoff's single slot.
	Delivered SendResult = iota
	// Full means the previous message has not yet been taken; the new one was dropped.
	Full
	// Closed means the handoff has been closed; the message was dropped.
	Closed
)

// BoundedHandoff is a single-slot synchronous hand-off between adjacent
// pipeline stages: a channel of capacity exactly 1. TrySend never blocks —
// a producer holding a fresh message while the consumer hasn't taken the
// previous one simply drops the new one, rate-matching the pipeline to its
// slowest stage instead of queuing. Recv blocks until a message is present
// or the handoff is closed.
type BoundedHandoff[T any] struct {
	ch        chan T
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewBoundedHandoff constructs an open, empty handoff.
func NewBoundedHandoff[T any]() *BoundedHandoff[T] {
	return &BoundedHandoff[T]{ch: make(chan T, 1)}
}

// TrySend attempts to place msg in the handoff's slot without blocking.
// Checking closed before sending avoids a send-on-closed-channel panic; this
// pipeline has exactly one sender per handoff, so there is no race between
// the closed check and Close itself.
func (h *BoundedHandoff[T]) TrySend(msg T) SendResult {
	if h.closed.Load() {
		return Closed
	}
	select {
	case h.ch <- msg:
		return Delivered
	default:
		return Full
	}
}

// Recv blocks until a message is available or the handoff is closed. ok is
// false when the handoff is closed and drained.
func (h *BoundedHandoff[T]) Recv() (msg T, ok bool) {
	msg, ok = <-h.ch
	return msg, ok
}

// Chan exposes the underlying channel so a consumer can select on it
// alongside its own quit signal, as RenderDriver.Frame does.
func (h *BoundedHandoff[T]) Chan() <-chan T {
	return h.ch
}

// Close closes the handoff exactly once, from the sender side. A blocked
// Recv wakes with ok=false once the slot is drained.
func (h *BoundedHandoff[T]) Close() {
	h.closeOnce.Do(func() {
		h.closed.Store(true)
		close(h.ch)
	})
}

// CloseReceive marks the handoff closed from the receiver side, without
// closing the underlying channel (only a sender may safely do that). It
// exists because Go has no equivalent of dropping a channel's receive end:
// a receiver that will never call Recv again still needs the sender's
// TrySend to observe Closed instead of silently succeeding into a slot
// nobody will ever drain.
func (h *BoundedHandoff[T]) CloseReceive() {
	h.closed.Store(true)
}

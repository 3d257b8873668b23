package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBoundedHandoff_DeliverThenFull(t *testing.T) {
	h := NewBoundedHandoff[int]()

	require.Equal(t, Delivered, h.TrySend(1))
	require.Equal(t, Full, h.TrySend(2))

	msg, ok := h.Recv()
	require.True(t, ok)
	require.Equal(t, 1, msg)

	require.Equal(t, Delivered, h.TrySend(3))
}

func TestBoundedHandoff_CloseWakesBlockedReceiver(t *testing.T) {
	h := NewBoundedHandoff[int]()

	done := make(chan bool, 1)
	go func() {
		_, ok := h.Recv()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	h.Close()

	select {
	case ok := <-done:
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Recv did not wake up after Close")
	}
}

func TestBoundedHandoff_TrySendAfterCloseReportsClosed(t *testing.T) {
	h := NewBoundedHandoff[int]()
	h.Close()
	require.Equal(t, Closed, h.TrySend(1))
}

// TestBoundedHandoff_CloseReceiveStopsSenderWithoutClosingChannel exercises
// the receiver-side shutdown path: CloseReceive must make TrySend observe
// Closed without a send-on-closed-channel panic, since the channel itself
// stays open.
func TestBoundedHandoff_CloseReceiveStopsSenderWithoutClosingChannel(t *testing.T) {
	h := NewBoundedHandoff[int]()
	h.CloseReceive()

	require.NotPanics(t, func() {
		require.Equal(t, Closed, h.TrySend(1))
	})
}

// TestBoundedHandoff_BackPressureDropsExcessMessages mirrors §8 scenario 3:
// a producer that keeps sending while the single slot is occupied observes
// Full, and the pipeline never accumulates more than one in-flight message.
func TestBoundedHandoff_BackPressureDropsExcessMessages(t *testing.T) {
	h := NewBoundedHandoff[int]()

	require.Equal(t, Delivered, h.TrySend(1))
	for i := 0; i < 10; i++ {
		require.Equal(t, Full, h.TrySend(i+2))
	}

	msg, ok := h.Recv()
	require.True(t, ok)
	require.Equal(t, 1, msg)
}

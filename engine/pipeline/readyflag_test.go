package pipeline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadyFlag_AcquireClearsFlag(t *testing.T) {
	f := NewReadyFlag(true)
	require.True(t, f.Ready())
	require.True(t, f.Acquire())
	require.False(t, f.Ready())
}

func TestReadyFlag_AcquireFailsWhenNotReady(t *testing.T) {
	f := NewReadyFlag(false)
	require.False(t, f.Acquire())
	require.False(t, f.Ready())
}

func TestReadyFlag_ReleaseSetsReady(t *testing.T) {
	f := NewReadyFlag(false)
	f.Release()
	require.True(t, f.Ready())
	require.True(t, f.Acquire())
}

// TestReadyFlag_ExactlyOneAcquirer exercises the invariant from §8: for every
// false interval, exactly one acquirer succeeds. N goroutines race to
// Acquire a single ready flag; exactly one must win.
func TestReadyFlag_ExactlyOneAcquirer(t *testing.T) {
	const n = 64
	f := NewReadyFlag(true)

	var wg sync.WaitGroup
	var successes int32
	var mu sync.Mutex

	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if f.Acquire() {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), successes)
}

// TestReadyFlag_AcquireReleaseParity mirrors §8 scenario 4: a flag acquired
// exactly k times and released exactly k times ends ready.
func TestReadyFlag_AcquireReleaseParity(t *testing.T) {
	f := NewReadyFlag(true)
	const k = 10

	for i := 0; i < k; i++ {
		require.True(t, f.Acquire())
		require.False(t, f.Ready())
		f.Release()
		require.True(t, f.Ready())
	}
}

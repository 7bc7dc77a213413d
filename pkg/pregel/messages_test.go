package pregel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessengerSynchronousDoubleBuffering(t *testing.T) {
	m := newMessenger(2, false)

	// A send in superstep 0 must not be readable until superstep 1.
	m.send(0, 1, 42)
	require.Empty(t, m.drain(0, 1))
	require.Equal(t, []float64{42}, m.drain(1, 1))

	// Drained slots stay empty.
	require.Empty(t, m.drain(1, 1))
}

func TestMessengerAsynchronousSameStepVisibility(t *testing.T) {
	m := newMessenger(2, true)

	m.send(0, 1, 7)
	require.Equal(t, []float64{7}, m.drain(0, 1))
}

func TestMessengerAccumulatesPerTarget(t *testing.T) {
	m := newMessenger(3, false)

	m.send(0, 2, 1)
	m.send(0, 2, 2)
	m.send(0, 1, 3)

	require.ElementsMatch(t, []float64{1, 2}, m.drain(1, 2))
	require.Equal(t, []float64{3}, m.drain(1, 1))
	require.Empty(t, m.drain(1, 0))
}

func TestMessengerSentFlagResetsPerSuperstep(t *testing.T) {
	m := newMessenger(2, false)

	m.beginSuperstep()
	require.False(t, m.anySent())

	m.send(0, 1, 1)
	require.True(t, m.anySent())

	m.beginSuperstep()
	require.False(t, m.anySent())
	require.Equal(t, int64(1), m.totalSent())
}

func TestMessengerPendingReactivationView(t *testing.T) {
	m := newMessenger(2, false)

	m.send(0, 1, 5)
	require.False(t, m.pending(0, 1), "write buffer must be invisible in the sending superstep")
	require.True(t, m.pending(1, 1))

	m.drain(1, 1)
	require.False(t, m.pending(1, 1))
}

func TestMessengerConcurrentFanIn(t *testing.T) {
	const senders = 16
	const perSender = 200

	m := newMessenger(1, false)

	var wg sync.WaitGroup
	wg.Add(senders)
	for s := 0; s < senders; s++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perSender; i++ {
				m.send(0, 0, 1)
			}
		}()
	}
	wg.Wait()

	require.Len(t, m.drain(1, 0), senders*perSender)
	require.Equal(t, int64(senders*perSender), m.totalSent())
}

func TestVoteTrackerLifecycle(t *testing.T) {
	v := newVoteTracker(3)
	require.True(t, v.anyActive())
	require.True(t, v.isActive(1))

	v.halt(0)
	v.halt(1)
	v.halt(2)
	require.False(t, v.anyActive())

	v.reactivate(1)
	require.True(t, v.isActive(1))
	require.True(t, v.anyActive())
}

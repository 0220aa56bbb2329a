package guard

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTryAcquireIsExclusivePerID(t *testing.T) {
	m := New("toggle", time.Minute)

	assert.True(t, m.TryAcquire("n1"))
	assert.False(t, m.TryAcquire("n1"))
	assert.True(t, m.TryAcquire("n2"))

	m.Release("n1")
	assert.True(t, m.TryAcquire("n1"))
}

func TestReleaseUnheldIsNoop(t *testing.T) {
	m := New("delete", time.Minute)
	m.Release("missing")
	assert.Equal(t, 0, m.Len())
}

func TestFamiliesDoNotBlockEachOther(t *testing.T) {
	f := NewFamilies(time.Minute)

	assert.True(t, f.Toggle.TryAcquire("note:1"))
	assert.True(t, f.Delete.TryAcquire("note:1"))
	assert.False(t, f.Toggle.TryAcquire("note:1"))
	assert.False(t, f.Delete.TryAcquire("note:1"))
}

func TestConcurrentAcquireHasSingleWinner(t *testing.T) {
	m := New("toggle", time.Minute)
	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.TryAcquire("same") {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}

func TestLeaseExpiresLostMarker(t *testing.T) {
	m := New("toggle", 20*time.Millisecond)
	assert.True(t, m.TryAcquire("leaked"))

	assert.Eventually(t, func() bool {
		return m.TryAcquire("leaked")
	}, time.Second, 5*time.Millisecond)
}

func TestPruneKeepsMarkersInsideLease(t *testing.T) {
	m := New("delete", time.Minute)
	m.TryAcquire("a")
	m.TryAcquire("b")

	assert.Equal(t, 0, m.Prune())
	assert.True(t, m.Held("a"))
	assert.True(t, m.Held("b"))
	assert.False(t, m.TryAcquire("a"), "a marker survives pruning until Release")

	m.Release("a")
	assert.Equal(t, 1, m.Len())
}

func TestPruneDropsExpiredMarkers(t *testing.T) {
	m := New("toggle", time.Minute)
	m.held.Set("leaked", time.Now(), time.Millisecond)
	m.TryAcquire("fresh")
	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, 1, m.Prune())
	assert.False(t, m.Held("leaked"))
	assert.True(t, m.Held("fresh"))
	assert.Equal(t, 1, m.Len())
}

package ids

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatorMonotonicallyIncreasing(t *testing.T) {
	var a Allocator
	var prev uint32
	for i := 0; i < 1000; i++ {
		next := a.Next()
		assert.Greater(t, next, prev)
		prev = next
	}
}

// TestAllocatorUniqueUnderConcurrency exercises spec invariant #3: over any
// sequence of Next() calls in one process, every returned value is unique.
func TestAllocatorUniqueUnderConcurrency(t *testing.T) {
	var a Allocator
	const n = 500
	results := make(chan uint32, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- a.Next()
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[uint32]bool, n)
	for id := range results {
		require.False(t, seen[id], "id %d returned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestEventCatalogDeduplicatesByName(t *testing.T) {
	c := NewEventCatalog()

	first := c.Get("Brakes")
	second := c.Get("Brakes")

	assert.Same(t, first, second)
	assert.False(t, first.Mapped)
	assert.Equal(t, 1, c.Len())
}

func TestEventCatalogMarkMapped(t *testing.T) {
	c := NewEventCatalog()
	rec := c.Get("Gear_Up")

	c.MarkMapped(rec.ID)

	assert.True(t, c.Get("Gear_Up").Mapped)
}

func TestEventCatalogLookupUnknownReturnsNil(t *testing.T) {
	c := NewEventCatalog()
	c.Get("Flaps_Up")

	assert.Nil(t, c.Lookup(9999))
}

func TestEventCatalogDistinctNamesGetDistinctIDs(t *testing.T) {
	c := NewEventCatalog()
	a := c.Get("Engine_Start")
	b := c.Get("Engine_Stop")

	assert.NotEqual(t, a.ID, b.ID)
}

package sequence

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "0001", Format(1))
	assert.Equal(t, "0042", Format(42))
	assert.Equal(t, "9999", Format(9999))

	// Values past the pad width keep all their digits.
	assert.Equal(t, "12345", Format(12345))
}

func TestMockAllocatorSeriesAreIndependent(t *testing.T) {
	m := &MockAllocator{}
	ctx := context.Background()

	n, err := m.Next(ctx, SeriesInvoiceNo)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = m.Next(ctx, SeriesProductID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = m.Next(ctx, SeriesInvoiceNo)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestMockAllocatorConcurrentDistinctness(t *testing.T) {
	m := &MockAllocator{}
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	results := make(chan int64, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := m.Next(ctx, SeriesInvoiceNo)
			assert.NoError(t, err)
			results <- n
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool, workers)
	for n := range results {
		assert.False(t, seen[n], "value %d issued twice", n)
		seen[n] = true
	}
	assert.Len(t, seen, workers)
}

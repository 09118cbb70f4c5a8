package sequence

import (
	"context"
	"sync"
)

// MockAllocator is a test implementation of Allocator.
// Use in unit tests to avoid database dependencies.
type MockAllocator struct {
	NextFunc func(ctx context.Context, series string) (int64, error)

	mu       sync.Mutex
	counters map[string]int64
}

// Next implements Allocator. Without NextFunc it behaves as an in-memory
// per-series counter starting from 1.
func (m *MockAllocator) Next(ctx context.Context, series string) (int64, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, series)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters == nil {
		m.counters = make(map[string]int64)
	}
	m.counters[series]++
	return m.counters[series], nil
}

// Ensure compile-time interface compliance.
var _ Allocator = (*MockAllocator)(nil)

package postgres

import (
	"context"
	"fmt"

	"storeroom/internal/core/sequence"
)

// Compile-time check.
var _ sequence.Allocator = (*SequenceAllocator)(nil)

// SequenceAllocator issues counter values from the unique_ids table. Each
// call is a single upsert-and-return statement, so concurrent callers are
// serialized by the row lock and never observe the same value. The series
// row is created lazily on first use.
type SequenceAllocator struct {
	txManager *TxManager
}

// NewSequenceAllocator creates a counter allocator.
func NewSequenceAllocator(txManager *TxManager) *SequenceAllocator {
	return &SequenceAllocator{txManager: txManager}
}

// Next increments and returns the counter for series.
func (a *SequenceAllocator) Next(ctx context.Context, series string) (int64, error) {
	const sql = `
		INSERT INTO unique_ids (series, value)
		VALUES ($1, 1)
		ON CONFLICT (series)
		DO UPDATE SET value = unique_ids.value + 1
		RETURNING value
	`

	var value int64
	querier := a.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, series).Scan(&value); err != nil {
		return 0, fmt.Errorf("next value for series %q: %w", series, err)
	}
	return value, nil
}

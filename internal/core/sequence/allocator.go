// Package sequence provides domain contracts for named counter series
// (invoice numbers, product codes). Implementations live in infrastructure.
package sequence

import (
	"context"
	"fmt"
)

// Well-known series names. They double as the persisted counter keys, so the
// spelling is load-bearing for migration tooling.
const (
	SeriesInvoiceNo = "invoiceNo"
	SeriesProductID = "productId"
)

// Allocator issues the next integer in a named counter series.
//
// Next must be a single atomic increment-and-return against the store.
// Two concurrent callers never observe or receive the same value, and the
// series row is created lazily starting from 1. A store failure is surfaced
// as a SequenceExhausted error; callers must abort, never substitute a
// locally computed number.
type Allocator interface {
	Next(ctx context.Context, series string) (int64, error)
}

// PadWidth is the fixed width invoice numbers and product codes are padded to.
const PadWidth = 4

// Format zero-pads an allocated value to PadWidth digits. Formatting is a
// pure transform on the caller side, not part of the allocator contract.
func Format(n int64) string {
	return fmt.Sprintf("%0*d", PadWidth, n)
}

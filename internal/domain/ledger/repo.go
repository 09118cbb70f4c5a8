package ledger

import (
	"context"

	"storeroom/internal/core/id"
	"storeroom/internal/domain/listing"
)

// Repository defines storage operations for stock adjustments.
type Repository interface {
	// AdjustQuantity applies a relative increment to the product's on-hand
	// quantity as ONE atomic statement (quantity = quantity + delta,
	// returning old and new). Concurrent adjustments to the same product
	// serialize at the store; no read-modify-write window exists.
	// Returns NotFound when the product row does not exist.
	AdjustQuantity(ctx context.Context, productID id.ID, delta int64) (previous, updated int64, err error)

	// AdjustTrade is AdjustQuantity for sale and return movements: the same
	// atomic statement additionally moves sold_quantity by -delta, so a sale
	// (negative delta) raises it and a return restore lowers it.
	AdjustTrade(ctx context.Context, productID id.ID, delta int64) (previous, updated int64, err error)

	// AppendEntry inserts an immutable adjustment trail row.
	AppendEntry(ctx context.Context, e *Entry) error

	// List retrieves trail entries with the shared query plan (month/year
	// stock-movement queries).
	List(ctx context.Context, q listing.Query) (listing.Result[*Entry], error)
}

package ledger

import (
	"context"
	"fmt"
	"time"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/listing"
	"storeroom/pkg/logger"
)

// Service provides stock adjustment operations. Every quantity change goes
// through Adjust so the trail stays complete.
type Service struct {
	repo Repository
}

// NewService creates a new stock ledger service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Adjust applies delta to the product's quantity (negative for a sale,
// positive for a return or restock) and appends a trail entry capturing the
// transition and the product snapshot at call time.
//
// Quantity is allowed to go negative: over-selling stays visible instead of
// being rejected. Callers needing a hard limit must check before calling.
// A negative result is logged for observability.
func (s *Service) Adjust(ctx context.Context, snap ProductSnapshot, delta int64) (Adjustment, error) {
	return s.apply(ctx, snap, delta, s.repo.AdjustQuantity)
}

// Trade applies a sale or return movement: like Adjust, but the product's
// sold counter moves in the opposite direction by the same amount.
func (s *Service) Trade(ctx context.Context, snap ProductSnapshot, delta int64) (Adjustment, error) {
	return s.apply(ctx, snap, delta, s.repo.AdjustTrade)
}

func (s *Service) apply(
	ctx context.Context,
	snap ProductSnapshot,
	delta int64,
	adjust func(ctx context.Context, productID id.ID, delta int64) (int64, int64, error),
) (Adjustment, error) {
	if id.IsNil(snap.ID) {
		return Adjustment{}, apperror.NewValidation("product id is required").
			WithDetail("field", "product.id")
	}
	if delta == 0 {
		return Adjustment{}, apperror.NewValidation("adjustment delta must be non-zero").
			WithDetail("product_id", snap.ID)
	}

	previous, updated, err := adjust(ctx, snap.ID, delta)
	if err != nil {
		return Adjustment{}, fmt.Errorf("adjust quantity for %s: %w", snap.ID, err)
	}

	now := time.Now()
	entry := &Entry{
		ID:               id.New(),
		ProductID:        snap.ID,
		Product:          snap,
		PreviousQuantity: previous,
		UpdatedQuantity:  updated,
		Month:            types.DateMonth(now),
		Year:             types.DateYear(now),
		CreatedAtString:  types.DateString(now),
		CreatedAt:        now,
	}
	if err := s.repo.AppendEntry(ctx, entry); err != nil {
		// The quantity moved but the trail row did not: surface as a
		// partial application so operators reconcile instead of retrying.
		return Adjustment{}, apperror.NewPartialApplication("stock adjust", err).
			WithDetail("product_id", snap.ID).
			WithDetail("delta", delta)
	}

	if updated < 0 {
		logger.Warn(ctx, "product stock went negative",
			"product_id", snap.ID,
			"previous", previous,
			"updated", updated,
		)
	}

	return Adjustment{ProductID: snap.ID, PreviousQuantity: previous, UpdatedQuantity: updated}, nil
}

// RecordInitial appends the stock-in entry for a newly created product
// (previousQuantity 0). The product row already carries the quantity, so no
// increment is applied.
func (s *Service) RecordInitial(ctx context.Context, snap ProductSnapshot, quantity int64) error {
	now := time.Now()
	entry := &Entry{
		ID:               id.New(),
		ProductID:        snap.ID,
		Product:          snap,
		PreviousQuantity: 0,
		UpdatedQuantity:  quantity,
		Month:            types.DateMonth(now),
		Year:             types.DateYear(now),
		CreatedAtString:  types.DateString(now),
		CreatedAt:        now,
	}
	return s.repo.AppendEntry(ctx, entry)
}

// List retrieves trail entries with filtering.
func (s *Service) List(ctx context.Context, q listing.Query) (listing.Result[*Entry], error) {
	return s.repo.List(ctx, q)
}

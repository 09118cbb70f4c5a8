package product

import (
	"context"
	"fmt"
	"time"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/core/sequence"
	"storeroom/internal/core/tx"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/ledger"
	"storeroom/internal/domain/listing"
	"storeroom/pkg/logger"
)

// Service provides product catalog operations. Creation assigns the product
// code from the shared sequence allocator and records the initial stock-in
// on the ledger; stock changes go through AdjustStock so the trail stays
// complete.
type Service struct {
	repo      Repository
	allocator sequence.Allocator
	ledger    *ledger.Service
	txManager tx.Manager
}

// NewService creates a new product service.
func NewService(repo Repository, allocator sequence.Allocator, ledgerSvc *ledger.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		allocator: allocator,
		ledger:    ledgerSvc,
		txManager: txManager,
	}
}

// Create adds a product: allocates the unique product code, persists the row
// and appends the initial ledger entry (previousQuantity 0).
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	n, err := s.allocator.Next(ctx, sequence.SeriesProductID)
	if err != nil {
		return apperror.NewSequenceExhausted(sequence.SeriesProductID, err)
	}
	p.ProductID = sequence.Format(n)

	now := time.Now()
	if id.IsNil(p.ID) {
		p.ID = id.New()
	}
	p.SoldQuantity = 0
	p.CreatedAtString = types.DateString(now)
	p.CreatedAt = now
	p.UpdatedAt = now

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, p); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		if err := s.ledger.RecordInitial(ctx, p.Snapshot(), p.Quantity); err != nil {
			return fmt.Errorf("record initial stock: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "product created", "id", p.ID, "product_id", p.ProductID, "quantity", p.Quantity)
	return nil
}

// GetByID retrieves a product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// Update modifies descriptive fields and prices. Quantity submitted through
// this path is reconciled via the ledger: the difference against the stored
// quantity is applied as an adjustment so a trail entry
// {previousQuantity, updatedQuantity} is appended, matching the manual
// stock-update behavior.
func (s *Service) Update(ctx context.Context, p *Product, newQuantity *int64) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetByID(ctx, p.ID)
		if err != nil {
			return err
		}

		p.UpdatedAt = time.Now()
		if err := s.repo.Update(ctx, p); err != nil {
			return fmt.Errorf("update product: %w", err)
		}

		if newQuantity != nil && *newQuantity != current.Quantity {
			if _, err := s.ledger.Adjust(ctx, p.Snapshot(), *newQuantity-current.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a product. The ledger trail is retained.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	return s.repo.Delete(ctx, productID)
}

// List retrieves products with filtering; the summary carries stock
// valuation figures over the same filtered set.
func (s *Service) List(ctx context.Context, q listing.Query) (listing.Result[*Product], error) {
	return s.repo.List(ctx, q)
}

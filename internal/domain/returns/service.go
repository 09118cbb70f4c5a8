package returns

import (
	"context"
	"fmt"
	"time"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/core/tx"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/ledger"
	"storeroom/internal/domain/listing"
	"storeroom/internal/domain/orders"
	"storeroom/pkg/logger"
)

// OrderReader is the slice of the order repository the return flow needs.
// It must be backed by the repository, not the order service: the service's
// UpdateStatus refuses Returned, which only this flow may set.
type OrderReader interface {
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*orders.Order, error)
	UpdateStatus(ctx context.Context, orderID id.ID, status orders.Status) error
}

// The order repository satisfies OrderReader as-is.
var _ OrderReader = (orders.Repository)(nil)

// StockAdjuster applies trade movements with trail entries.
type StockAdjuster interface {
	Trade(ctx context.Context, snap ledger.ProductSnapshot, delta int64) (ledger.Adjustment, error)
}

// Service files returns against orders.
type Service struct {
	repo      Repository
	orders    OrderReader
	stock     StockAdjuster
	txManager tx.Manager
}

// NewService creates a new return service.
func NewService(repo Repository, orderReader OrderReader, stock StockAdjuster, txManager tx.Manager) *Service {
	return &Service{repo: repo, orders: orderReader, stock: stock, txManager: txManager}
}

// File records a return against the order identified by invoice number.
//
// Each submitted line names a product from the original order and the
// quantity the customer keeps. The difference against the originally sold
// quantity is restored to stock. Lines naming products absent from the
// original order are rejected; a kept quantity above the original is
// rejected too. The whole order flips to Returned, even for a partial
// return. Stock restores, the return insert and the status flip share one
// transaction.
func (s *Service) File(ctx context.Context, in FileInput) (*Return, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	order, err := s.orders.GetByInvoiceNo(ctx, in.InvoiceNo)
	if err != nil {
		return nil, err
	}

	original := make(map[id.ID]orders.LineItem, len(order.Products))
	for _, line := range order.Products {
		original[line.ProductID] = line
	}

	type restore struct {
		snap  ledger.ProductSnapshot
		delta int64
	}
	restores := make([]restore, 0, len(in.Products))
	kept := make([]orders.LineItem, 0, len(in.Products))

	for i, sub := range in.Products {
		sold, ok := original[sub.ProductID]
		if !ok {
			return nil, apperror.NewValidation("product was not part of the order").
				WithDetail("line", i).WithDetail("product_id", sub.ProductID)
		}
		if sub.KeptQuantity > sold.SoldQuantity {
			return nil, apperror.NewValidation("kept quantity exceeds sold quantity").
				WithDetail("line", i).
				WithDetail("soldQuantity", sold.SoldQuantity).
				WithDetail("kept", sub.KeptQuantity)
		}

		delta := sold.SoldQuantity - sub.KeptQuantity
		if delta > 0 {
			restores = append(restores, restore{
				snap: ledger.ProductSnapshot{
					ID:            sold.ProductID,
					Name:          sold.Name,
					SKU:           sold.SKU,
					Model:         sold.Model,
					Others:        sold.Others,
					SalePrice:     sold.SalePrice,
					PurchasePrice: sold.PurchasePrice,
				},
				delta: delta,
			})
		}

		line := sold
		line.SoldQuantity = sub.KeptQuantity
		kept = append(kept, line)
	}

	now := time.Now()
	ret := &Return{
		ID:               id.New(),
		OrderID:          order.ID,
		InvoiceNo:        order.InvoiceNo,
		Customer:         order.Customer,
		Salesman:         order.Salesman,
		Products:         kept,
		ReturnDate:       in.ReturnDate,
		ReturnDateString: types.DateString(in.ReturnDate),
		Total:            in.Total,
		Month:            types.DateMonth(in.ReturnDate),
		Year:             types.DateYear(in.ReturnDate),
		CreatedAt:        now,
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, r := range restores {
			if _, err := s.stock.Trade(ctx, r.snap, r.delta); err != nil {
				return fmt.Errorf("restore stock for %s: %w", r.snap.ID, err)
			}
		}
		if err := s.repo.Create(ctx, ret); err != nil {
			return fmt.Errorf("persist return: %w", err)
		}
		if err := s.orders.UpdateStatus(ctx, order.ID, orders.StatusReturned); err != nil {
			return fmt.Errorf("flip order status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "return filed",
		"return_id", ret.ID,
		"invoice_no", ret.InvoiceNo,
		"restored_lines", len(restores),
	)
	return ret, nil
}

// GetByID retrieves a return.
func (s *Service) GetByID(ctx context.Context, returnID id.ID) (*Return, error) {
	return s.repo.GetByID(ctx, returnID)
}

// List retrieves returns with filtering.
func (s *Service) List(ctx context.Context, q listing.Query) (listing.Result[*Return], error) {
	return s.repo.List(ctx, q)
}

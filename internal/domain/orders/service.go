package orders

import (
	"context"
	"fmt"
	"time"

	"storeroom/internal/core/apperror"
	appcontext "storeroom/internal/core/context"
	"storeroom/internal/core/id"
	"storeroom/internal/core/sequence"
	"storeroom/internal/core/tx"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/audit"
	"storeroom/internal/domain/catalogs/customer"
	"storeroom/internal/domain/catalogs/salesman"
	"storeroom/internal/domain/ledger"
	"storeroom/internal/domain/listing"
	"storeroom/pkg/logger"
)

// CustomerResolver resolves the order's customer by phone, creating one when
// none exists.
type CustomerResolver interface {
	Resolve(ctx context.Context, phone string, candidate customer.Candidate) (*customer.Customer, error)
}

// StockAdjuster applies trade movements with trail entries.
type StockAdjuster interface {
	Trade(ctx context.Context, snap ledger.ProductSnapshot, delta int64) (ledger.Adjustment, error)
}

// Service places and reads sales and pre-order documents.
type Service struct {
	repo      Repository
	allocator sequence.Allocator
	resolver  CustomerResolver
	stock     StockAdjuster
	salesmen  salesman.Repository
	txManager tx.Manager
	auditor   audit.Recorder
}

// NewService creates a new order service. auditor may be nil.
func NewService(
	repo Repository,
	allocator sequence.Allocator,
	resolver CustomerResolver,
	stock StockAdjuster,
	salesmen salesman.Repository,
	txManager tx.Manager,
	auditor audit.Recorder,
) *Service {
	return &Service{
		repo:      repo,
		allocator: allocator,
		resolver:  resolver,
		stock:     stock,
		salesmen:  salesmen,
		txManager: txManager,
		auditor:   auditor,
	}
}

// Place creates an order. The invoice number is taken from the atomic
// counter before any state is touched, so a counter failure aborts with
// nothing to undo. Customer resolution, per-line stock decrements and the
// document insert then run in a single transaction.
func (s *Service) Place(ctx context.Context, in PlaceInput) (*PlaceResult, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	next, err := s.allocator.Next(ctx, sequence.SeriesInvoiceNo)
	if err != nil {
		return nil, apperror.NewSequenceExhausted(sequence.SeriesInvoiceNo, err)
	}
	invoiceNo := sequence.Format(next)

	seller, err := s.actingSalesman(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &Order{
		ID:                 id.New(),
		Kind:               in.Kind,
		InvoiceNo:          invoiceNo,
		Salesman:           seller,
		Products:           in.Products,
		SoldDate:           in.SoldDate,
		SoldDateString:     types.DateString(in.SoldDate),
		DiscountAmount:     in.DiscountAmount,
		DiscountPercent:    in.DiscountPercent,
		ShippingCharge:     in.ShippingCharge,
		SubTotal:           in.SubTotal,
		Total:              in.Total,
		TotalPurchasePrice: in.TotalPurchasePrice,
		Status:             StatusPending,
		Month:              types.DateMonth(in.SoldDate),
		Year:               types.DateYear(in.SoldDate),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		resolved, err := s.resolver.Resolve(ctx, in.Customer.Phone, customer.Candidate{
			Name:    in.Customer.Name,
			Phone:   in.Customer.Phone,
			Email:   in.Customer.Email,
			Address: in.Customer.Address,
		})
		if err != nil {
			return fmt.Errorf("resolve customer: %w", err)
		}
		if resolved != nil {
			order.Customer = &CustomerSnapshot{
				ID:      resolved.ID,
				Name:    resolved.Name,
				Phone:   resolved.Phone,
				Address: resolved.Address,
			}
		}

		for _, line := range in.Products {
			snap := ledger.ProductSnapshot{
				ID:            line.ProductID,
				Name:          line.Name,
				SKU:           line.SKU,
				Model:         line.Model,
				Others:        line.Others,
				SalePrice:     line.SalePrice,
				PurchasePrice: line.PurchasePrice,
			}
			if _, err := s.stock.Trade(ctx, snap, -line.SoldQuantity); err != nil {
				return fmt.Errorf("decrement stock for %s: %w", line.ProductID, err)
			}
		}

		if err := s.repo.Create(ctx, order); err != nil {
			return fmt.Errorf("persist order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "order placed",
		"order_id", order.ID,
		"kind", order.Kind,
		"invoice_no", order.InvoiceNo,
		"lines", len(order.Products),
	)
	s.record(ctx, "place", order)

	return &PlaceResult{ID: order.ID, InvoiceNo: order.InvoiceNo}, nil
}

// UpdateStatus moves an order through its lifecycle. Returned is reserved
// for the return flow and cannot be set here.
func (s *Service) UpdateStatus(ctx context.Context, orderID id.ID, status Status) error {
	switch status {
	case StatusPending, StatusHold, StatusReadyForShipping, StatusCompleted, StatusCanceled:
	case StatusReturned:
		return apperror.NewValidation("status Returned is set by filing a return").
			WithDetail("status", status)
	default:
		return apperror.NewValidation("unknown order status").WithDetail("status", status)
	}

	if err := s.repo.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}
	logger.Info(ctx, "order status updated", "order_id", orderID, "status", status)
	return nil
}

// GetByID retrieves an order.
func (s *Service) GetByID(ctx context.Context, orderID id.ID) (*Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

// GetByInvoiceNo retrieves an order by its invoice number.
func (s *Service) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*Order, error) {
	return s.repo.GetByInvoiceNo(ctx, invoiceNo)
}

// List retrieves orders of one kind with filtering and summary figures.
func (s *Service) List(ctx context.Context, kind Kind, q listing.Query) (listing.Result[*Order], error) {
	return s.repo.List(ctx, kind, q)
}

// actingSalesman resolves the request identity into the order snapshot. The
// identity is trusted; the catalog lookup only fills the display name when
// the token carried none.
func (s *Service) actingSalesman(ctx context.Context) (salesman.Snapshot, error) {
	ident := appcontext.GetIdentity(ctx)
	if ident == nil {
		return salesman.Snapshot{}, apperror.NewValidation("acting admin identity is required").
			WithDetail("field", "identity")
	}
	adminID, err := id.Parse(ident.AdminID)
	if err != nil {
		return salesman.Snapshot{}, apperror.NewValidation("malformed admin id").
			WithDetail("admin_id", ident.AdminID)
	}
	if ident.Name != "" {
		return salesman.Snapshot{ID: adminID, Name: ident.Name, Phone: ident.Phone}, nil
	}
	rec, err := s.salesmen.GetByID(ctx, adminID)
	if err != nil {
		return salesman.Snapshot{}, fmt.Errorf("lookup acting admin: %w", err)
	}
	return rec.Snapshot(), nil
}

// record writes the audit row after commit. Failures are logged, never
// returned: the order is already placed.
func (s *Service) record(ctx context.Context, action string, o *Order) {
	if s.auditor == nil {
		return
	}
	rec := audit.NewRecord(action, "order", o.ID, appcontext.GetAdminID(ctx), o)
	if err := s.auditor.Record(ctx, rec); err != nil {
		logger.Warn(ctx, "audit record failed", "order_id", o.ID, "error", err)
	}
}

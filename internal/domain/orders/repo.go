package orders

import (
	"context"

	"storeroom/internal/core/id"
	"storeroom/internal/domain/listing"
)

// Repository defines storage operations for orders.
//
// Create must fail with a duplicate error if invoice_no already exists; the
// unique constraint is the last line of defense behind the counter.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID id.ID) (*Order, error)
	GetByInvoiceNo(ctx context.Context, invoiceNo string) (*Order, error)
	UpdateStatus(ctx context.Context, orderID id.ID, status Status) error
	List(ctx context.Context, kind Kind, q listing.Query) (listing.Result[*Order], error)
}

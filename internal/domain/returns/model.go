// Package returns files customer returns against existing orders and
// restores the returned stock.
package returns

import (
	"context"
	"time"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/catalogs/salesman"
	"storeroom/internal/domain/listing"
	"storeroom/internal/domain/orders"
)

// Return is a filed return document. Products carries the submitted lines,
// where each line's SoldQuantity is the quantity the customer KEEPS; the
// difference against the original line is what went back to stock.
type Return struct {
	ID        id.ID                    `db:"id" json:"id"`
	OrderID   id.ID                    `db:"order_id" json:"orderId"`
	InvoiceNo string                   `db:"invoice_no" json:"invoiceNo"`
	Customer  *orders.CustomerSnapshot `db:"customer" json:"customer,omitempty"`
	Salesman  salesman.Snapshot        `db:"salesman" json:"salesman"`
	Products  []orders.LineItem        `db:"products" json:"products"`

	ReturnDate       time.Time `db:"return_date" json:"returnDate"`
	ReturnDateString string    `db:"return_date_string" json:"returnDateString"`

	Total types.Money `db:"total" json:"total"`

	Month int `db:"month" json:"month"`
	Year  int `db:"year" json:"year"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Line is one submitted return line. KeptQuantity is what the customer
// retains after the return.
type Line struct {
	ProductID    id.ID `json:"id"`
	KeptQuantity int64 `json:"soldQuantity"`
}

// FileInput is the return filing request after API-layer binding.
type FileInput struct {
	InvoiceNo  string
	ReturnDate time.Time
	Products   []Line
	Total      types.Money
}

// Validate rejects malformed input before the order is loaded.
func (in FileInput) Validate(ctx context.Context) error {
	if in.InvoiceNo == "" {
		return apperror.NewValidation("invoiceNo is required").WithDetail("field", "invoiceNo")
	}
	if in.ReturnDate.IsZero() {
		return apperror.NewValidation("returnDate is required").WithDetail("field", "returnDate")
	}
	if len(in.Products) == 0 {
		return apperror.NewValidation("at least one return line is required").
			WithDetail("field", "products")
	}
	for i, line := range in.Products {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("return line id is required").WithDetail("line", i)
		}
		if line.KeptQuantity < 0 {
			return apperror.NewValidation("kept quantity cannot be negative").
				WithDetail("line", i).WithDetail("soldQuantity", line.KeptQuantity)
		}
	}
	return nil
}

// Repository defines storage operations for returns.
type Repository interface {
	Create(ctx context.Context, r *Return) error
	GetByID(ctx context.Context, returnID id.ID) (*Return, error)
	List(ctx context.Context, q listing.Query) (listing.Result[*Return], error)
}

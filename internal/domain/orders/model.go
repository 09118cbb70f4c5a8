// Package orders provides sales and pre-order documents and the order
// placement flow that ties together sequencing, customer resolution and the
// stock ledger.
package orders

import (
	"context"
	"time"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/catalogs/salesman"
)

// Kind distinguishes immediate sales from pre-orders. Both share the invoice
// number series and the same placement flow.
type Kind string

const (
	KindSales    Kind = "sales"
	KindPreOrder Kind = "preorder"
)

// Status is the order lifecycle enumeration.
type Status string

const (
	StatusPending          Status = "Pending"
	StatusHold             Status = "Hold"
	StatusReadyForShipping Status = "Ready for Shipping"
	StatusCompleted        Status = "Completed"
	StatusCanceled         Status = "Canceled"

	// StatusReturned is set once any return is filed against the order.
	// The flip covers the whole order even for partial returns.
	StatusReturned Status = "Returned"
)

// CustomerSnapshot is the customer copy frozen into the order at placement
// time. Later customer edits never change it. Nil for anonymous orders.
type CustomerSnapshot struct {
	ID      id.ID  `json:"id"`
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// LineItem is a frozen line snapshot. Name and prices are copied as
// submitted, so later catalog edits never corrupt historical invoices.
type LineItem struct {
	ProductID     id.ID       `json:"id"`
	Name          string      `json:"name"`
	SKU           string      `json:"sku,omitempty"`
	Model         string      `json:"model,omitempty"`
	Others        string      `json:"others,omitempty"`
	SoldQuantity  int64       `json:"soldQuantity"`
	SalePrice     types.Money `json:"salePrice"`
	PurchasePrice types.Money `json:"purchasePrice"`
}

// Order is a sales or pre-order document. InvoiceNo is unique and immutable
// once persisted; Products is a frozen snapshot of catalog state at order
// time.
type Order struct {
	ID        id.ID             `db:"id" json:"id"`
	Kind      Kind              `db:"kind" json:"kind"`
	InvoiceNo string            `db:"invoice_no" json:"invoiceNo"`
	Customer  *CustomerSnapshot `db:"customer" json:"customer,omitempty"`
	Salesman  salesman.Snapshot `db:"salesman" json:"salesman"`
	Products  []LineItem        `db:"products" json:"products"`

	SoldDate       time.Time `db:"sold_date" json:"soldDate"`
	SoldDateString string    `db:"sold_date_string" json:"soldDateString"`

	DiscountAmount     types.Money `db:"discount_amount" json:"discountAmount"`
	DiscountPercent    types.Money `db:"discount_percent" json:"discountPercent"`
	ShippingCharge     types.Money `db:"shipping_charge" json:"shippingCharge"`
	SubTotal           types.Money `db:"sub_total" json:"subTotal"`
	Total              types.Money `db:"total" json:"total"`
	TotalPurchasePrice types.Money `db:"total_purchase_price" json:"totalPurchasePrice"`

	Status Status `db:"status" json:"status"`
	Month  int    `db:"month" json:"month"`
	Year   int    `db:"year" json:"year"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CustomerInput carries the customer fields submitted with an order.
type CustomerInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// PlaceInput is the order placement request after API-layer binding.
type PlaceInput struct {
	Kind     Kind
	SoldDate time.Time
	Customer CustomerInput
	Products []LineItem

	DiscountAmount  types.Money
	DiscountPercent types.Money
	ShippingCharge  types.Money
	SubTotal        types.Money
	Total           types.Money

	// TotalPurchasePrice is submitted by the client alongside the pricing
	// totals; it is stored as-is on the document.
	TotalPurchasePrice types.Money
}

// Validate rejects malformed input before any mutation is attempted.
func (in PlaceInput) Validate(ctx context.Context) error {
	if in.Kind != KindSales && in.Kind != KindPreOrder {
		return apperror.NewValidation("unknown order kind").WithDetail("kind", in.Kind)
	}
	if in.SoldDate.IsZero() {
		return apperror.NewValidation("soldDate is required").WithDetail("field", "soldDate")
	}
	if len(in.Products) == 0 {
		return apperror.NewValidation("at least one product line is required").
			WithDetail("field", "products")
	}
	for i, line := range in.Products {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product line id is required").
				WithDetail("line", i)
		}
		if line.SoldQuantity <= 0 {
			return apperror.NewValidation("soldQuantity must be positive").
				WithDetail("line", i).WithDetail("soldQuantity", line.SoldQuantity)
		}
	}
	return nil
}

// PlaceResult identifies the created order.
type PlaceResult struct {
	ID        id.ID  `json:"id"`
	InvoiceNo string `json:"invoiceNo"`
}

// Package product provides the product catalog.
package product

import (
	"context"
	"time"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/ledger"
)

// Ref is a denormalized `{id, name}` snapshot pair of a catalog reference
// (category, subcategory, brand, unit). Copied at write time, never a live
// reference.
type Ref struct {
	ID   *id.ID `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Product is a catalog item. Quantity is the only mutable source of truth
// for current stock and reflects the net of all ledger entries; it is
// mutated exclusively through the stock ledger.
type Product struct {
	ID        id.ID  `db:"id" json:"id"`
	ProductID string `db:"product_id" json:"productId"` // sequence-assigned code, unique
	Name      string `db:"name" json:"name"`
	SKU       string `db:"sku" json:"sku,omitempty"`
	Model     string `db:"model" json:"model,omitempty"`
	Others    string `db:"others" json:"others,omitempty"`

	Category    Ref `db:"category" json:"category"`
	Subcategory Ref `db:"subcategory" json:"subcategory"`
	Brand       Ref `db:"brand" json:"brand"`
	Unit        Ref `db:"unit" json:"unit"`

	Quantity     int64 `db:"quantity" json:"quantity"`
	SoldQuantity int64 `db:"sold_quantity" json:"soldQuantity"`
	MinQuantity  int64 `db:"min_quantity" json:"minQuantity"`

	PurchasePrice types.Money `db:"purchase_price" json:"purchasePrice"`
	SalePrice     types.Money `db:"sale_price" json:"salePrice"`

	Status          bool      `db:"status" json:"status"`
	Description     string    `db:"description" json:"description,omitempty"`
	CreatedAtString string    `db:"created_at_string" json:"createdAtString"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}

// Snapshot returns the ledger snapshot of the product's descriptive fields.
func (p *Product) Snapshot() ledger.ProductSnapshot {
	return ledger.ProductSnapshot{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Model:         p.Model,
		Others:        p.Others,
		SalePrice:     p.SalePrice,
		PurchasePrice: p.PurchasePrice,
	}
}

// Validate implements basic catalog invariants.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "name")
	}
	if p.PurchasePrice.IsNegative() || p.SalePrice.IsNegative() {
		return apperror.NewValidation("prices must not be negative").
			WithDetail("field", "purchasePrice/salePrice")
	}
	return nil
}

package product

import (
	"context"

	"storeroom/internal/core/id"
	"storeroom/internal/domain/listing"
)

// Repository defines storage operations for products.
//
// Quantity is deliberately absent from Update: stock moves only through the
// ledger's atomic increment.
type Repository interface {
	Create(ctx context.Context, p *Product) error

	GetByID(ctx context.Context, productID id.ID) (*Product, error)

	// GetByCode retrieves a product by its sequence-assigned code.
	GetByCode(ctx context.Context, code string) (*Product, error)

	// Update modifies descriptive fields and prices, leaving quantity and
	// sold_quantity untouched.
	Update(ctx context.Context, p *Product) error

	Delete(ctx context.Context, productID id.ID) error

	List(ctx context.Context, q listing.Query) (listing.Result[*Product], error)
}

package customer

import (
	"context"

	"storeroom/internal/core/id"
	"storeroom/internal/domain/listing"
)

// Repository defines storage operations for customers.
type Repository interface {
	// Create inserts a new customer. A phone collision surfaces as a
	// Duplicate error.
	Create(ctx context.Context, c *Customer) error

	// CreateIfAbsent inserts c unless a customer with the same phone already
	// exists, and returns the winning row either way. This is the
	// upsert-on-conflict primitive the resolver uses to close the
	// find-or-create race.
	CreateIfAbsent(ctx context.Context, c *Customer) (*Customer, error)

	// GetByID retrieves a customer by ID (NotFound when absent).
	GetByID(ctx context.Context, customerID id.ID) (*Customer, error)

	// GetByPhone retrieves a customer by exact phone match (NotFound when absent).
	GetByPhone(ctx context.Context, phone string) (*Customer, error)

	// Update modifies an existing customer.
	Update(ctx context.Context, c *Customer) error

	// Delete removes a customer.
	Delete(ctx context.Context, customerID id.ID) error

	// List retrieves customers with the shared query plan.
	List(ctx context.Context, q listing.Query) (listing.Result[*Customer], error)
}

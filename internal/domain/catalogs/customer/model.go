// Package customer provides the customer catalog and phone-based resolution.
package customer

import (
	"context"
	"time"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
)

// Customer is an identity record keyed by phone number. Phone uniqueness is
// enforced by a database constraint; orders embed a copy of these fields as
// they existed at order time, so later edits never rewrite history.
type Customer struct {
	ID      id.ID  `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Phone   string `db:"phone" json:"phone"`
	Email   string `db:"email" json:"email,omitempty"`
	Address string `db:"address" json:"address,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a customer with a fresh ID.
func New(name, phone, email, address string) *Customer {
	now := time.Now()
	return &Customer{
		ID:        id.New(),
		Name:      name,
		Phone:     phone,
		Email:     email,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate implements basic invariants for direct catalog writes.
func (c *Customer) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("customer name is required").
			WithDetail("field", "name")
	}
	if c.Phone == "" {
		return apperror.NewValidation("customer phone is required").
			WithDetail("field", "phone")
	}
	return nil
}

// Package salesman provides the acting admin catalog. Authentication lives
// with the external identity collaborator; this package only supplies the
// `{id, name}` snapshot attached to orders.
package salesman

import (
	"context"
	"time"

	"storeroom/internal/core/id"
)

// Salesman is an admin record referenced by orders.
type Salesman struct {
	ID       id.ID  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Username string `db:"username" json:"username"`
	Phone    string `db:"phone" json:"phone,omitempty"`

	// PasswordHash is written by provisioning tooling for the identity
	// collaborator's use; this service never verifies it.
	PasswordHash string `db:"password_hash" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Snapshot is the denormalized salesman copy embedded in orders. The phone
// rides along so order search can match the acting salesman.
type Snapshot struct {
	ID    id.ID  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Snapshot returns the embeddable snapshot of s.
func (s *Salesman) Snapshot() Snapshot {
	return Snapshot{ID: s.ID, Name: s.Name, Phone: s.Phone}
}

// Repository defines storage operations for salesmen.
type Repository interface {
	Create(ctx context.Context, s *Salesman) error
	GetByID(ctx context.Context, salesmanID id.ID) (*Salesman, error)
}

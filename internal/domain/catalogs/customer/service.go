package customer

import (
	"context"
	"fmt"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/domain/listing"
	"storeroom/pkg/logger"
)

// Candidate carries the customer fields submitted with an order, used only
// when no existing record matches the phone number.
type Candidate struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// Service provides customer operations, including resolution as an order
// side effect.
type Service struct {
	repo Repository
}

// NewService creates a new customer service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve returns the customer for phone, creating one from candidate when
// no record matches. An empty phone means an anonymous order and resolves to
// nil. An existing record is returned as stored; candidate fields never
// overwrite it.
//
// Creation goes through CreateIfAbsent, so two concurrent first orders from
// the same new phone converge on a single row instead of inserting twice.
func (s *Service) Resolve(ctx context.Context, phone string, candidate Candidate) (*Customer, error) {
	if phone == "" {
		return nil, nil
	}

	existing, err := s.repo.GetByPhone(ctx, phone)
	if err == nil {
		return existing, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, fmt.Errorf("lookup customer by phone: %w", err)
	}

	created, err := s.repo.CreateIfAbsent(ctx, New(candidate.Name, phone, candidate.Email, candidate.Address))
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	logger.Info(ctx, "customer resolved by creation", "customer_id", created.ID, "phone", phone)
	return created, nil
}

// Create adds a customer through the direct catalog path.
func (s *Service) Create(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Create(ctx, c)
}

// GetByID retrieves a customer by ID.
func (s *Service) GetByID(ctx context.Context, customerID id.ID) (*Customer, error) {
	return s.repo.GetByID(ctx, customerID)
}

// Update modifies a customer record. Historical order snapshots are not
// affected.
func (s *Service) Update(ctx context.Context, c *Customer) error {
	if err := c.Validate(ctx); err != nil {
		return err
	}
	return s.repo.Update(ctx, c)
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, customerID id.ID) error {
	return s.repo.Delete(ctx, customerID)
}

// List retrieves customers with filtering.
func (s *Service) List(ctx context.Context, q listing.Query) (listing.Result[*Customer], error) {
	return s.repo.List(ctx, q)
}

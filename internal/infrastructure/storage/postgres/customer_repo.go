package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/domain/catalogs/customer"
	"storeroom/internal/domain/listing"
)

// Compile-time check.
var _ customer.Repository = (*CustomerRepo)(nil)

var customerColumns = ExtractDBColumns[customer.Customer]()

var customerSpec = listing.Spec{
	Table:        "customers",
	Columns:      customerColumns,
	SearchFields: []string{"name", "phone"},
	DefaultSort:  listing.Sort{Field: "created_at", Desc: true},
}

// CustomerRepo is the PostgreSQL customer repository.
type CustomerRepo struct {
	txManager *TxManager
}

// NewCustomerRepo creates a customer repository.
func NewCustomerRepo(txManager *TxManager) *CustomerRepo {
	return &CustomerRepo{txManager: txManager}
}

// Create inserts a new customer. A phone collision surfaces as Duplicate.
func (r *CustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	sql, args, err := Builder().
		Insert("customers").
		SetMap(StructToMap(c)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("customer", "phone", c.Phone)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// CreateIfAbsent inserts c unless the phone is already taken, then returns
// the row that owns the phone. ON CONFLICT DO NOTHING plus a reselect keeps
// two concurrent first orders from the same number on a single row.
func (r *CustomerRepo) CreateIfAbsent(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	sql, args, err := Builder().
		Insert("customers").
		SetMap(StructToMap(c)).
		Suffix("ON CONFLICT (phone) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}

	return r.GetByPhone(ctx, c.Phone)
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepo) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	return r.getOne(ctx, squirrel.Eq{"id": customerID}, customerID.String())
}

// GetByPhone retrieves a customer by exact phone match.
func (r *CustomerRepo) GetByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	return r.getOne(ctx, squirrel.Eq{"phone": phone}, phone)
}

func (r *CustomerRepo) getOne(ctx context.Context, cond squirrel.Eq, key string) (*customer.Customer, error) {
	sql, args, err := Builder().
		Select(customerColumns...).
		From("customers").
		Where(cond).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c customer.Customer
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("customer", key)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// Update modifies an existing customer.
func (r *CustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	data := StructToMap(c)
	delete(data, "id")
	delete(data, "created_at")

	sql, args, err := Builder().
		Update("customers").
		SetMap(data).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", c.ID)
	}
	return nil
}

// Delete removes a customer.
func (r *CustomerRepo) Delete(ctx context.Context, customerID id.ID) error {
	sql, args, err := Builder().
		Delete("customers").
		Where(squirrel.Eq{"id": customerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", customerID)
	}
	return nil
}

// List retrieves customers with the shared query plan.
func (r *CustomerRepo) List(ctx context.Context, q listing.Query) (listing.Result[*customer.Customer], error) {
	return List[*customer.Customer](ctx, r.txManager, customerSpec, q)
}

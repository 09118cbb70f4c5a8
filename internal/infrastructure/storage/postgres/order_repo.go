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
	"storeroom/internal/domain/listing"
	"storeroom/internal/domain/orders"
)

// Compile-time check.
var _ orders.Repository = (*OrderRepo)(nil)

var orderColumns = ExtractDBColumns[orders.Order]()

var orderSpec = listing.Spec{
	Table:   "orders",
	Columns: orderColumns,
	// Search reaches into the frozen jsonb snapshots: an operator looks up
	// an order by invoice number or by either party's phone.
	SearchFields: []string{"invoice_no", "customer->>'phone'", "salesman->>'phone'"},
	DefaultSort:  listing.Sort{Field: "created_at", Desc: true},
	SummaryExprs: map[string]string{
		"grandTotal": "SUM(total)",
	},
}

// OrderRepo is the PostgreSQL order repository. Sales and pre-orders share
// the table; the kind column separates the listings.
type OrderRepo struct {
	txManager *TxManager
}

// NewOrderRepo creates an order repository.
func NewOrderRepo(txManager *TxManager) *OrderRepo {
	return &OrderRepo{txManager: txManager}
}

// Create inserts a new order. The unique index on invoice_no is the final
// guard behind the counter; a collision surfaces as Duplicate.
func (r *OrderRepo) Create(ctx context.Context, o *orders.Order) error {
	sql, args, err := Builder().
		Insert("orders").
		SetMap(StructToMap(o)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicate("order", "invoice_no", o.InvoiceNo)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID retrieves an order by ID.
func (r *OrderRepo) GetByID(ctx context.Context, orderID id.ID) (*orders.Order, error) {
	return r.getOne(ctx, squirrel.Eq{"id": orderID}, orderID.String())
}

// GetByInvoiceNo retrieves an order by invoice number.
func (r *OrderRepo) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*orders.Order, error) {
	return r.getOne(ctx, squirrel.Eq{"invoice_no": invoiceNo}, invoiceNo)
}

func (r *OrderRepo) getOne(ctx context.Context, cond squirrel.Eq, key string) (*orders.Order, error) {
	sql, args, err := Builder().
		Select(orderColumns...).
		From("orders").
		Where(cond).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var o orders.Order
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &o, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("order", key)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// UpdateStatus moves an order to a new lifecycle status.
func (r *OrderRepo) UpdateStatus(ctx context.Context, orderID id.ID, status orders.Status) error {
	sql, args, err := Builder().
		Update("orders").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("order", orderID)
	}
	return nil
}

// List retrieves orders of one kind with the shared query plan. The grand
// total figure covers the same filtered set as the page.
func (r *OrderRepo) List(ctx context.Context, kind orders.Kind, q listing.Query) (listing.Result[*orders.Order], error) {
	return List[*orders.Order](ctx, r.txManager, orderSpec, q, squirrel.Eq{"kind": kind})
}

package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/domain/listing"
	"storeroom/internal/domain/returns"
)

// Compile-time check.
var _ returns.Repository = (*ReturnRepo)(nil)

var returnColumns = ExtractDBColumns[returns.Return]()

var returnSpec = listing.Spec{
	Table:   "return_sales",
	Columns: returnColumns,
	// Same reach as the order search: invoice number or either party's
	// phone inside the frozen snapshots.
	SearchFields: []string{"invoice_no", "customer->>'phone'", "salesman->>'phone'"},
	DefaultSort:  listing.Sort{Field: "created_at", Desc: true},
	SummaryExprs: map[string]string{
		"grandTotal": "SUM(total)",
	},
}

// ReturnRepo is the PostgreSQL return repository.
type ReturnRepo struct {
	txManager *TxManager
}

// NewReturnRepo creates a return repository.
func NewReturnRepo(txManager *TxManager) *ReturnRepo {
	return &ReturnRepo{txManager: txManager}
}

// Create inserts a filed return.
func (r *ReturnRepo) Create(ctx context.Context, ret *returns.Return) error {
	sql, args, err := Builder().
		Insert("return_sales").
		SetMap(StructToMap(ret)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	return nil
}

// GetByID retrieves a return by ID.
func (r *ReturnRepo) GetByID(ctx context.Context, returnID id.ID) (*returns.Return, error) {
	sql, args, err := Builder().
		Select(returnColumns...).
		From("return_sales").
		Where(squirrel.Eq{"id": returnID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var ret returns.Return
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &ret, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("return", returnID)
		}
		return nil, fmt.Errorf("get return: %w", err)
	}
	return &ret, nil
}

// List retrieves returns with the shared query plan.
func (r *ReturnRepo) List(ctx context.Context, q listing.Query) (listing.Result[*returns.Return], error) {
	return List[*returns.Return](ctx, r.txManager, returnSpec, q)
}

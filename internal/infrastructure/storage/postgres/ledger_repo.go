package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/domain/ledger"
	"storeroom/internal/domain/listing"
)

// Compile-time check.
var _ ledger.Repository = (*LedgerRepo)(nil)

var ledgerColumns = ExtractDBColumns[ledger.Entry]()

var ledgerSpec = listing.Spec{
	Table:        "stock_entries",
	Columns:      ledgerColumns,
	SearchFields: nil,
	DefaultSort:  listing.Sort{Field: "created_at", Desc: true},
}

// LedgerRepo is the PostgreSQL stock ledger repository.
type LedgerRepo struct {
	txManager *TxManager
}

// NewLedgerRepo creates a stock ledger repository.
func NewLedgerRepo(txManager *TxManager) *LedgerRepo {
	return &LedgerRepo{txManager: txManager}
}

// AdjustQuantity applies a relative increment as one atomic statement and
// returns the old and new quantity. The read-modify-write window of a
// load-then-store sequence does not exist here; concurrent adjustments
// serialize on the row.
func (r *LedgerRepo) AdjustQuantity(ctx context.Context, productID id.ID, delta int64) (int64, int64, error) {
	const sql = `
		UPDATE products
		SET quantity = quantity + $1, updated_at = now()
		WHERE id = $2
		RETURNING quantity - $1, quantity
	`
	return r.adjust(ctx, sql, productID, delta)
}

// AdjustTrade applies a sale or return movement: quantity moves by delta and
// sold_quantity by -delta, in the same statement.
func (r *LedgerRepo) AdjustTrade(ctx context.Context, productID id.ID, delta int64) (int64, int64, error) {
	const sql = `
		UPDATE products
		SET quantity = quantity + $1, sold_quantity = sold_quantity - $1, updated_at = now()
		WHERE id = $2
		RETURNING quantity - $1, quantity
	`
	return r.adjust(ctx, sql, productID, delta)
}

func (r *LedgerRepo) adjust(ctx context.Context, sql string, productID id.ID, delta int64) (int64, int64, error) {
	var previous, updated int64
	err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, delta, productID).Scan(&previous, &updated)
	if err == pgx.ErrNoRows {
		return 0, 0, apperror.NewNotFound("product", productID)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("adjust quantity: %w", err)
	}
	return previous, updated, nil
}

// AppendEntry inserts an immutable trail row.
func (r *LedgerRepo) AppendEntry(ctx context.Context, e *ledger.Entry) error {
	sql, args, err := Builder().
		Insert("stock_entries").
		SetMap(StructToMap(e)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert stock entry: %w", err)
	}
	return nil
}

// List retrieves trail entries with the shared query plan.
func (r *LedgerRepo) List(ctx context.Context, q listing.Query) (listing.Result[*ledger.Entry], error) {
	return List[*ledger.Entry](ctx, r.txManager, ledgerSpec, q)
}

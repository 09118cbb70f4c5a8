package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/domain/listing"
	"storeroom/internal/domain/transactions"
)

// Compile-time check.
var _ transactions.Repository = (*TransactionRepo)(nil)

var transactionColumns = ExtractDBColumns[transactions.Transaction]()

// The totalAmount figure sums due amounts, not paid plus due. Reports have
// always presented it that way and downstream sheets reconcile against it.
var transactionSpec = listing.Spec{
	Table:        "transactions",
	Columns:      transactionColumns,
	SearchFields: nil,
	DefaultSort:  listing.Sort{Field: "created_at", Desc: true},
	SummaryExprs: map[string]string{
		"totalPaid":   "SUM(paid_amount)",
		"totalAmount": "SUM(due_amount)",
	},
}

// TransactionRepo is the PostgreSQL vendor transaction repository.
type TransactionRepo struct {
	txManager *TxManager
}

// NewTransactionRepo creates a transaction repository.
func NewTransactionRepo(txManager *TxManager) *TransactionRepo {
	return &TransactionRepo{txManager: txManager}
}

// Create inserts a new transaction.
func (r *TransactionRepo) Create(ctx context.Context, t *transactions.Transaction) error {
	sql, args, err := Builder().
		Insert("transactions").
		SetMap(StructToMap(t)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepo) GetByID(ctx context.Context, transactionID id.ID) (*transactions.Transaction, error) {
	sql, args, err := Builder().
		Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"id": transactionID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var t transactions.Transaction
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &t, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("transaction", transactionID)
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return &t, nil
}

// List retrieves transactions with the shared query plan.
func (r *TransactionRepo) List(ctx context.Context, q listing.Query) (listing.Result[*transactions.Transaction], error) {
	return List[*transactions.Transaction](ctx, r.txManager, transactionSpec, q)
}

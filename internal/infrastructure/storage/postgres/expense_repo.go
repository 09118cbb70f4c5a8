package postgres

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/domain/expense"
	"storeroom/internal/domain/listing"
)

// Compile-time check.
var _ expense.Repository = (*ExpenseRepo)(nil)

var expenseColumns = ExtractDBColumns[expense.Expense]()

var expenseSpec = listing.Spec{
	Table:        "expenses",
	Columns:      expenseColumns,
	SearchFields: []string{"expense_for"},
	DefaultSort:  listing.Sort{Field: "created_at", Desc: true},
	SummaryExprs: map[string]string{
		"totalPaidAmount": "SUM(paid_amount)",
		"totalDueAmount":  "SUM(due_amount)",
	},
}

// ExpenseRepo is the PostgreSQL expense repository.
type ExpenseRepo struct {
	txManager *TxManager
}

// NewExpenseRepo creates an expense repository.
func NewExpenseRepo(txManager *TxManager) *ExpenseRepo {
	return &ExpenseRepo{txManager: txManager}
}

// Create inserts a new expense.
func (r *ExpenseRepo) Create(ctx context.Context, e *expense.Expense) error {
	sql, args, err := Builder().
		Insert("expenses").
		SetMap(StructToMap(e)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID retrieves an expense by ID.
func (r *ExpenseRepo) GetByID(ctx context.Context, expenseID id.ID) (*expense.Expense, error) {
	sql, args, err := Builder().
		Select(expenseColumns...).
		From("expenses").
		Where(squirrel.Eq{"id": expenseID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var e expense.Expense
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &e, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("expense", expenseID)
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return &e, nil
}

// Delete removes an expense.
func (r *ExpenseRepo) Delete(ctx context.Context, expenseID id.ID) error {
	sql, args, err := Builder().
		Delete("expenses").
		Where(squirrel.Eq{"id": expenseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("expense", expenseID)
	}
	return nil
}

// List retrieves expenses with the shared query plan and the paid/due
// figures over the filtered set.
func (r *ExpenseRepo) List(ctx context.Context, q listing.Query) (listing.Result[*expense.Expense], error) {
	return List[*expense.Expense](ctx, r.txManager, expenseSpec, q)
}

// Package expense tracks operating expenses for the monthly reports.
package expense

import (
	"context"
	"time"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/listing"
)

// Expense is one expense record.
type Expense struct {
	ID          id.ID       `db:"id" json:"id"`
	ExpenseFor  string      `db:"expense_for" json:"expenseFor"`
	Description string      `db:"description" json:"description,omitempty"`
	PaidAmount  types.Money `db:"paid_amount" json:"paidAmount"`
	DueAmount   types.Money `db:"due_amount" json:"dueAmount"`
	Date        time.Time   `db:"date" json:"date"`
	DateString  string      `db:"date_string" json:"dateString"`
	Month       int         `db:"month" json:"month"`
	Year        int         `db:"year" json:"year"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
}

// New constructs an expense for date, deriving the string and period fields.
func New(expenseFor, description string, paid, due types.Money, date time.Time) *Expense {
	return &Expense{
		ID:          id.New(),
		ExpenseFor:  expenseFor,
		Description: description,
		PaidAmount:  paid,
		DueAmount:   due,
		Date:        date,
		DateString:  types.DateString(date),
		Month:       types.DateMonth(date),
		Year:        types.DateYear(date),
		CreatedAt:   time.Now(),
	}
}

// Validate checks required fields.
func (e *Expense) Validate(ctx context.Context) error {
	if e.ExpenseFor == "" {
		return apperror.NewValidation("expenseFor is required").WithDetail("field", "expenseFor")
	}
	if e.Date.IsZero() {
		return apperror.NewValidation("date is required").WithDetail("field", "date")
	}
	return nil
}

// Repository defines storage operations for expenses.
type Repository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, expenseID id.ID) (*Expense, error)
	Delete(ctx context.Context, expenseID id.ID) error
	List(ctx context.Context, q listing.Query) (listing.Result[*Expense], error)
}

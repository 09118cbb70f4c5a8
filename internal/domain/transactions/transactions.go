// Package transactions tracks vendor payment transactions. The summary
// figures over this table feed the monthly reports.
package transactions

import (
	"context"
	"time"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/listing"
)

// Vendor is the denormalized vendor pair embedded in a transaction.
type Vendor struct {
	ID   id.ID  `json:"id"`
	Name string `json:"name"`
}

// Transaction is one vendor payment record.
type Transaction struct {
	ID         id.ID       `db:"id" json:"id"`
	Vendor     Vendor      `db:"vendor" json:"vendor"`
	PaidAmount types.Money `db:"paid_amount" json:"paidAmount"`
	DueAmount  types.Money `db:"due_amount" json:"dueAmount"`

	TransactionDate       time.Time `db:"transaction_date" json:"transactionDate"`
	TransactionDateString string    `db:"transaction_date_string" json:"transactionDateString"`

	Month     int       `db:"month" json:"month"`
	Year      int       `db:"year" json:"year"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// New constructs a transaction for date, deriving string and period fields.
func New(vendor Vendor, paid, due types.Money, date time.Time) *Transaction {
	return &Transaction{
		ID:                    id.New(),
		Vendor:                vendor,
		PaidAmount:            paid,
		DueAmount:             due,
		TransactionDate:       date,
		TransactionDateString: types.DateString(date),
		Month:                 types.DateMonth(date),
		Year:                  types.DateYear(date),
		CreatedAt:             time.Now(),
	}
}

// Validate checks required fields.
func (t *Transaction) Validate(ctx context.Context) error {
	if id.IsNil(t.Vendor.ID) {
		return apperror.NewValidation("vendor is required").WithDetail("field", "vendor")
	}
	if t.TransactionDate.IsZero() {
		return apperror.NewValidation("transactionDate is required").
			WithDetail("field", "transactionDate")
	}
	return nil
}

// Repository defines storage operations for transactions.
type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, transactionID id.ID) (*Transaction, error)
	List(ctx context.Context, q listing.Query) (listing.Result[*Transaction], error)
}

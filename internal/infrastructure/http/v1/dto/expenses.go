package dto

import (
	"time"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/expense"
)

// ExpenseRequest is the expense create body.
type ExpenseRequest struct {
	ExpenseFor  string      `json:"expenseFor" binding:"required"`
	Description string      `json:"description"`
	PaidAmount  types.Money `json:"paidAmount"`
	DueAmount   types.Money `json:"dueAmount"`
	Date        string      `json:"date" binding:"required"`
}

// ToExpense converts the request into a domain expense.
func (r ExpenseRequest) ToExpense() (*expense.Expense, error) {
	date, err := time.Parse(types.DateLayout, r.Date)
	if err != nil {
		return nil, apperror.NewValidation("malformed date").
			WithDetail("date", r.Date).WithDetail("layout", types.DateLayout)
	}
	return expense.New(r.ExpenseFor, r.Description, r.PaidAmount, r.DueAmount, date), nil
}

package dto

import (
	"time"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/transactions"
)

// VendorRequest is the denormalized vendor pair submitted with a transaction.
type VendorRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// TransactionRequest is the vendor transaction create body.
type TransactionRequest struct {
	Vendor          VendorRequest `json:"vendor" binding:"required"`
	PaidAmount      types.Money   `json:"paidAmount"`
	DueAmount       types.Money   `json:"dueAmount"`
	TransactionDate string        `json:"transactionDate" binding:"required"`
}

// ToTransaction converts the request into a domain transaction.
func (r TransactionRequest) ToTransaction() (*transactions.Transaction, error) {
	date, err := time.Parse(types.DateLayout, r.TransactionDate)
	if err != nil {
		return nil, apperror.NewValidation("malformed transactionDate").
			WithDetail("transactionDate", r.TransactionDate).WithDetail("layout", types.DateLayout)
	}

	vendorID, err := id.Parse(r.Vendor.ID)
	if err != nil {
		return nil, apperror.NewValidation("malformed vendor id").WithDetail("id", r.Vendor.ID)
	}

	vendor := transactions.Vendor{ID: vendorID, Name: r.Vendor.Name}
	return transactions.New(vendor, r.PaidAmount, r.DueAmount, date), nil
}

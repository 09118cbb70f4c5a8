package dto

import (
	"time"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/returns"
)

// ReturnLineRequest is one submitted return line. SoldQuantity is the
// quantity the customer keeps after the return.
type ReturnLineRequest struct {
	ID           string `json:"id" binding:"required"`
	SoldQuantity int64  `json:"soldQuantity" binding:"gte=0"`
}

// FileReturnRequest is the return filing body.
type FileReturnRequest struct {
	InvoiceNo  string              `json:"invoiceNo" binding:"required"`
	ReturnDate string              `json:"returnDate" binding:"required"`
	Products   []ReturnLineRequest `json:"products" binding:"required,min=1,dive"`
	Total      types.Money         `json:"total"`
}

// ToInput converts the request into the domain filing input.
func (r FileReturnRequest) ToInput() (returns.FileInput, error) {
	returnDate, err := time.Parse(types.DateLayout, r.ReturnDate)
	if err != nil {
		return returns.FileInput{}, apperror.NewValidation("malformed returnDate").
			WithDetail("returnDate", r.ReturnDate).WithDetail("layout", types.DateLayout)
	}

	lines := make([]returns.Line, len(r.Products))
	for i, p := range r.Products {
		productID, err := id.Parse(p.ID)
		if err != nil {
			return returns.FileInput{}, apperror.NewValidation("malformed product id").
				WithDetail("line", i).WithDetail("id", p.ID)
		}
		lines[i] = returns.Line{ProductID: productID, KeptQuantity: p.SoldQuantity}
	}

	return returns.FileInput{
		InvoiceNo:  r.InvoiceNo,
		ReturnDate: returnDate,
		Products:   lines,
		Total:      r.Total,
	}, nil
}

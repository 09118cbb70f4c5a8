package dto

import (
	"time"

	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/orders"
)

// OrderLineRequest is one submitted order line. Name and prices are frozen
// into the document as given.
type OrderLineRequest struct {
	ID            string      `json:"id" binding:"required"`
	Name          string      `json:"name" binding:"required"`
	SKU           string      `json:"sku"`
	Model         string      `json:"model"`
	Others        string      `json:"others"`
	SoldQuantity  int64       `json:"soldQuantity" binding:"required,gt=0"`
	SalePrice     types.Money `json:"salePrice"`
	PurchasePrice types.Money `json:"purchasePrice"`
}

// OrderCustomerRequest is the customer block submitted with an order. All
// fields optional; an empty phone means an anonymous order.
type OrderCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// PlaceOrderRequest is the order placement body. The route decides the kind.
type PlaceOrderRequest struct {
	SoldDate string               `json:"soldDate" binding:"required"`
	Customer OrderCustomerRequest `json:"customer"`
	Products []OrderLineRequest   `json:"products" binding:"required,min=1,dive"`

	DiscountAmount     types.Money `json:"discountAmount"`
	DiscountPercent    types.Money `json:"discountPercent"`
	ShippingCharge     types.Money `json:"shippingCharge"`
	SubTotal           types.Money `json:"subTotal"`
	Total              types.Money `json:"total"`
	TotalPurchasePrice types.Money `json:"totalPurchasePrice"`
}

// ToInput converts the request into the domain placement input.
func (r PlaceOrderRequest) ToInput(kind orders.Kind) (orders.PlaceInput, error) {
	soldDate, err := time.Parse(types.DateLayout, r.SoldDate)
	if err != nil {
		return orders.PlaceInput{}, apperror.NewValidation("malformed soldDate").
			WithDetail("soldDate", r.SoldDate).WithDetail("layout", types.DateLayout)
	}

	lines := make([]orders.LineItem, len(r.Products))
	for i, p := range r.Products {
		productID, err := id.Parse(p.ID)
		if err != nil {
			return orders.PlaceInput{}, apperror.NewValidation("malformed product id").
				WithDetail("line", i).WithDetail("id", p.ID)
		}
		lines[i] = orders.LineItem{
			ProductID:     productID,
			Name:          p.Name,
			SKU:           p.SKU,
			Model:         p.Model,
			Others:        p.Others,
			SoldQuantity:  p.SoldQuantity,
			SalePrice:     p.SalePrice,
			PurchasePrice: p.PurchasePrice,
		}
	}

	return orders.PlaceInput{
		Kind:     kind,
		SoldDate: soldDate,
		Customer: orders.CustomerInput{
			Name:    r.Customer.Name,
			Phone:   r.Customer.Phone,
			Email:   r.Customer.Email,
			Address: r.Customer.Address,
		},
		Products:           lines,
		DiscountAmount:     r.DiscountAmount,
		DiscountPercent:    r.DiscountPercent,
		ShippingCharge:     r.ShippingCharge,
		SubTotal:           r.SubTotal,
		Total:              r.Total,
		TotalPurchasePrice: r.TotalPurchasePrice,
	}, nil
}

// UpdateStatusRequest moves an order through its lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

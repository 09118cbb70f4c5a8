package dto

import (
	"storeroom/internal/core/apperror"
	"storeroom/internal/core/id"
	"storeroom/internal/core/types"
	"storeroom/internal/domain/catalogs/product"
)

// RefRequest is a `{id, name}` reference pair (category, brand, unit).
type RefRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (r RefRequest) toRef() (product.Ref, error) {
	if r.ID == "" {
		return product.Ref{Name: r.Name}, nil
	}
	refID, err := id.Parse(r.ID)
	if err != nil {
		return product.Ref{}, apperror.NewValidation("malformed reference id").
			WithDetail("id", r.ID)
	}
	return product.Ref{ID: &refID, Name: r.Name}, nil
}

// ProductRequest is the product create/update body. The product code is
// never client-supplied, and on update the quantity is reconciled through
// the stock trail rather than written directly.
type ProductRequest struct {
	Name        string     `json:"name" binding:"required"`
	SKU         string     `json:"sku"`
	Model       string     `json:"model"`
	Others      string     `json:"others"`
	Category    RefRequest `json:"category"`
	Subcategory RefRequest `json:"subcategory"`
	Brand       RefRequest `json:"brand"`
	Unit        RefRequest `json:"unit"`
	Quantity    int64      `json:"quantity" binding:"gte=0"`
	MinQuantity int64      `json:"minQuantity" binding:"gte=0"`

	PurchasePrice types.Money `json:"purchasePrice"`
	SalePrice     types.Money `json:"salePrice"`

	Status      bool   `json:"status"`
	Description string `json:"description"`
}

// ToProduct converts the request into a domain product.
func (r ProductRequest) ToProduct() (*product.Product, error) {
	p := &product.Product{
		Name:          r.Name,
		SKU:           r.SKU,
		Model:         r.Model,
		Others:        r.Others,
		Quantity:      r.Quantity,
		MinQuantity:   r.MinQuantity,
		PurchasePrice: r.PurchasePrice,
		SalePrice:     r.SalePrice,
		Status:        r.Status,
		Description:   r.Description,
	}

	var err error
	if p.Category, err = r.Category.toRef(); err != nil {
		return nil, err
	}
	if p.Subcategory, err = r.Subcategory.toRef(); err != nil {
		return nil, err
	}
	if p.Brand, err = r.Brand.toRef(); err != nil {
		return nil, err
	}
	if p.Unit, err = r.Unit.toRef(); err != nil {
		return nil, err
	}
	return p, nil
}

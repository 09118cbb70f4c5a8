// Package ledger owns product quantity mutations and the append-only
// adjustment trail behind them.
package ledger

import (
	"time"

	"storeroom/internal/core/id"
	"storeroom/internal/core/types"
)

// ProductSnapshot is the descriptive subset of a product copied into each
// ledger entry at adjustment time. Immutable once written.
type ProductSnapshot struct {
	ID            id.ID       `json:"id"`
	Name          string      `json:"name"`
	SKU           string      `json:"sku,omitempty"`
	Model         string      `json:"model,omitempty"`
	Others        string      `json:"others,omitempty"`
	SalePrice     types.Money `json:"salePrice"`
	PurchasePrice types.Money `json:"purchasePrice"`
}

// Entry is one immutable row of the adjustment trail. Entries are appended
// on initial stock-in, manual updates, sales and returns, and are never
// updated or deleted afterwards.
type Entry struct {
	ID id.ID `db:"id" json:"id"`

	// ProductID duplicates the snapshot's id as a plain column so one
	// product's trail is filterable without digging into the jsonb.
	ProductID id.ID           `db:"product_id" json:"productId"`
	Product   ProductSnapshot `db:"product" json:"product"`
	PreviousQuantity int64           `db:"previous_quantity" json:"previousQuantity"`
	UpdatedQuantity  int64           `db:"updated_quantity" json:"updatedQuantity"`
	Month            int             `db:"month" json:"month"`
	Year             int             `db:"year" json:"year"`
	CreatedAtString  string          `db:"created_at_string" json:"createdAtString"`
	CreatedAt        time.Time       `db:"created_at" json:"createdAt"`
}

// Adjustment reports the quantity transition performed by Adjust.
type Adjustment struct {
	ProductID        id.ID
	PreviousQuantity int64
	UpdatedQuantity  int64
}

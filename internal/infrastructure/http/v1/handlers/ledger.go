package handlers

import (
	"github.com/gin-gonic/gin"

	"storeroom/internal/domain/filter"
	"storeroom/internal/domain/ledger"
	"storeroom/internal/infrastructure/http/v1/dto"
)

// LedgerHandler exposes the append-only stock trail.
type LedgerHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(base *BaseHandler, service *ledger.Service) *LedgerHandler {
	return &LedgerHandler{BaseHandler: base, service: service}
}

// List handles GET /stock-entries. An optional productId query narrows the
// trail to one product's history.
func (h *LedgerHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	q := req.ToQuery()
	if productID := c.Query("productId"); productID != "" {
		parsed, ok := h.ParseQueryID(c, "productId", productID)
		if !ok {
			return
		}
		q.Filters = append(q.Filters, filter.Eq("product_id", parsed))
	}

	result, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

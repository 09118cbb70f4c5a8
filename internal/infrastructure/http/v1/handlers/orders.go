package handlers

import (
	"github.com/gin-gonic/gin"

	"storeroom/internal/domain/orders"
	"storeroom/internal/infrastructure/http/v1/dto"
)

// OrderHandler handles order placement and lifecycle endpoints. Sales and
// pre-orders share the handler; the route decides the kind.
type OrderHandler struct {
	*BaseHandler
	service *orders.Service
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(base *BaseHandler, service *orders.Service) *OrderHandler {
	return &OrderHandler{BaseHandler: base, service: service}
}

// Place returns a placement handler bound to the given kind.
// POST /sales, POST /preorders
func (h *OrderHandler) Place(kind orders.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.PlaceOrderRequest
		if !h.BindJSON(c, &req) {
			return
		}

		in, err := req.ToInput(kind)
		if err != nil {
			h.Error(c, err)
			return
		}

		result, err := h.service.Place(c.Request.Context(), in)
		if err != nil {
			h.Error(c, err)
			return
		}

		h.OK(c, result)
	}
}

// Get handles GET /sales/:id and /preorders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	order, err := h.service.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, order)
}

// UpdateStatus handles PATCH /sales/:id/status and /preorders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), orderID, orders.Status(req.Status)); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "status updated")
}

// List returns a listing handler bound to the given kind.
// GET /sales, GET /preorders
func (h *OrderHandler) List(kind orders.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ListRequest
		if !h.BindQuery(c, &req) {
			return
		}

		result, err := h.service.List(c.Request.Context(), kind, req.ToQuery())
		if err != nil {
			h.Error(c, err)
			return
		}

		h.OK(c, result)
	}
}

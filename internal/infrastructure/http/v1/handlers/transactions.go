package handlers

import (
	"github.com/gin-gonic/gin"

	"storeroom/internal/domain/transactions"
	"storeroom/internal/infrastructure/http/v1/dto"
)

// TransactionHandler handles vendor transaction endpoints.
type TransactionHandler struct {
	*BaseHandler
	repo transactions.Repository
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(base *BaseHandler, repo transactions.Repository) *TransactionHandler {
	return &TransactionHandler{BaseHandler: base, repo: repo}
}

// Create handles POST /transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.TransactionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	t, err := req.ToTransaction()
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := t.Validate(c.Request.Context()); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.repo.Create(c.Request.Context(), t); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, t.ID.String())
}

// Get handles GET /transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	transactionID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	t, err := h.repo.GetByID(c.Request.Context(), transactionID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, t)
}

// List handles GET /transactions
func (h *TransactionHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if !h.BindQuery(c, &req) {
		return
	}

	result, err := h.repo.List(c.Request.Context(), req.ToQuery())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"storeroom/internal/domain/expense"
	"storeroom/internal/infrastructure/http/v1/dto"
)

// ExpenseHandler handles expense endpoints.
type ExpenseHandler struct {
	*BaseHandler
	repo expense.Repository
}

// NewExpenseHandler creates a new expense handler.
func NewExpenseHandler(base *BaseHandler, repo expense.Repository) *ExpenseHandler {
	return &ExpenseHandler{BaseHandler: base, repo: repo}
}

// Create handles POST /expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req dto.ExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	e, err := req.ToExpense()
	if err != nil {
		h.Error(c, err)
		return
	}
	if err := e.Validate(c.Request.Context()); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.repo.Create(c.Request.Context(), e); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, e.ID.String())
}

// Get handles GET /expenses/:id
func (h *ExpenseHandler) Get(c *gin.Context) {
	expenseID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	e, err := h.repo.GetByID(c.Request.Context(), expenseID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, e)
}

// Delete handles DELETE /expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	expenseID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), expenseID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// List handles GET /expenses. The summary carries the paid and due totals
// over the same filtered period.
func (h *ExpenseHandler) List(c *gin.Context) {
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

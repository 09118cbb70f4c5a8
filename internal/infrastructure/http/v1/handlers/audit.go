package handlers

import (
	"github.com/gin-gonic/gin"

	"storeroom/internal/infrastructure/storage/postgres"
)

// AuditHandler exposes the append-only audit trail for troubleshooting.
type AuditHandler struct {
	*BaseHandler
	store *postgres.AuditStore
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, store *postgres.AuditStore) *AuditHandler {
	return &AuditHandler{BaseHandler: base, store: store}
}

// History handles GET /audit/:entity/:id
func (h *AuditHandler) History(c *gin.Context) {
	entityID, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	limit := h.ParseIntQuery(c, "limit", 50)

	records, err := h.store.History(c.Request.Context(), c.Param("entity"), entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, records)
}

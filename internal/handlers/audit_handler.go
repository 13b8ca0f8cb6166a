package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reseller-backend/internal/repository"
	"reseller-backend/internal/services/records"
)

const defaultAuditLimit = 100

type AuditHandler struct {
	records *records.Service
}

func NewAuditHandler(rec *records.Service) *AuditHandler {
	return &AuditHandler{records: rec}
}

// List accepts ?entity=, ?entity_id= and ?limit=.
func (h *AuditHandler) List(c *gin.Context) {
	f := repository.AuditFilter{Entity: c.Query("entity"), Limit: defaultAuditLimit}
	if raw := c.Query("entity_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity_id"})
			return
		}
		f.EntityID = uint(id)
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		f.Limit = limit
	}

	entries, err := h.records.AuditLog(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

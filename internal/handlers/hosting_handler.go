package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reseller-backend/internal/repository"
	"reseller-backend/internal/services/records"
	"reseller-backend/internal/services/reporting"
)

type HostingHandler struct {
	records *records.Service
	reports *reporting.Service
}

func NewHostingHandler(rec *records.Service, rep *reporting.Service) *HostingHandler {
	return &HostingHandler{records: rec, reports: rep}
}

func (h *HostingHandler) List(c *gin.Context) {
	f, err := parseFilters(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	items, err := h.records.ListHostingServices(ctx, repository.HostingFilter{
		CustomerID: f.CustomerID,
		Status:     f.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	stats, err := h.reports.HostingStats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "stats": stats})
}

func (h *HostingHandler) Create(c *gin.Context) {
	var in records.HostingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidPayload(c)
		return
	}
	svc, err := h.records.CreateHostingService(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *HostingHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc, err := h.records.GetHostingService(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *HostingHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in records.HostingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidPayload(c)
		return
	}
	svc, err := h.records.UpdateHostingService(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// Renew extends the service by the requested number of years, one by default.
func (h *HostingHandler) Renew(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	payload := struct {
		Years int `json:"years"`
	}{Years: 1}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			invalidPayload(c)
			return
		}
	}
	svc, err := h.records.RenewHostingService(c.Request.Context(), id, payload.Years)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *HostingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.records.DeleteHostingService(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

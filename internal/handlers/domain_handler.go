package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reseller-backend/internal/repository"
	"reseller-backend/internal/services/records"
	"reseller-backend/internal/services/reporting"
)

type DomainHandler struct {
	records *records.Service
	reports *reporting.Service
}

func NewDomainHandler(rec *records.Service, rep *reporting.Service) *DomainHandler {
	return &DomainHandler{records: rec, reports: rep}
}

// List returns the filtered domains together with the global domain stats.
func (h *DomainHandler) List(c *gin.Context) {
	f, err := parseFilters(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	items, err := h.records.ListDomains(ctx, repository.DomainFilter{
		CustomerID: f.CustomerID,
		Query:      f.Query,
		Active:     f.Active,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	stats, err := h.reports.DomainStats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "stats": stats})
}

func (h *DomainHandler) Create(c *gin.Context) {
	var in records.DomainInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidPayload(c)
		return
	}
	domain, err := h.records.CreateDomain(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, domain)
}

func (h *DomainHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	domain, err := h.records.GetDomain(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain)
}

func (h *DomainHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in records.DomainInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidPayload(c)
		return
	}
	domain, err := h.records.UpdateDomain(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, domain)
}

func (h *DomainHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.records.DeleteDomain(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reseller-backend/internal/repository"
	"reseller-backend/internal/services/records"
	"reseller-backend/internal/services/reporting"
)

type SSLHandler struct {
	records *records.Service
	reports *reporting.Service
}

func NewSSLHandler(rec *records.Service, rep *reporting.Service) *SSLHandler {
	return &SSLHandler{records: rec, reports: rep}
}

func (h *SSLHandler) List(c *gin.Context) {
	f, err := parseFilters(c)
	if err != nil {
		respondError(c, err)
		return
	}
	ctx := c.Request.Context()
	items, err := h.records.ListSSLCertificates(ctx, repository.SSLFilter{
		CustomerID: f.CustomerID,
		Active:     f.Active,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	stats, err := h.reports.SSLStats(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "stats": stats})
}

func (h *SSLHandler) Create(c *gin.Context) {
	var in records.SSLInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidPayload(c)
		return
	}
	cert, err := h.records.CreateSSLCertificate(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cert)
}

func (h *SSLHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cert, err := h.records.GetSSLCertificate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (h *SSLHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in records.SSLInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidPayload(c)
		return
	}
	cert, err := h.records.UpdateSSLCertificate(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (h *SSLHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.records.DeleteSSLCertificate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reseller-backend/internal/repository"
	"reseller-backend/internal/services/records"
	"reseller-backend/internal/services/reporting"
	"reseller-backend/internal/services/transfer"
)

type InvoiceHandler struct {
	records  *records.Service
	reports  *reporting.Service
	transfer *transfer.Service
}

func NewInvoiceHandler(rec *records.Service, rep *reporting.Service, tr *transfer.Service) *InvoiceHandler {
	return &InvoiceHandler{records: rec, reports: rep, transfer: tr}
}

// List returns the filtered invoices; the stats cover the same filter.
func (h *InvoiceHandler) List(c *gin.Context) {
	f, err := parseFilters(c)
	if err != nil {
		respondError(c, err)
		return
	}
	filter := repository.InvoiceFilter{CustomerID: f.CustomerID, Status: f.Status, Query: f.Query}
	ctx := c.Request.Context()

	items, err := h.records.ListInvoices(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	stats, err := h.reports.InvoiceStats(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "stats": stats})
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	var in records.InvoiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidPayload(c)
		return
	}
	inv, err := h.records.CreateInvoice(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	inv, err := h.records.GetInvoice(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in records.InvoiceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidPayload(c)
		return
	}
	inv, err := h.records.UpdateInvoice(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.records.DeleteInvoice(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Import reads a CSV upload from the "file" form field.
func (h *InvoiceHandler) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer file.Close()

	result, err := h.transfer.ImportInvoices(c.Request.Context(), file)
	if err != nil && result != nil {
		// Earlier rows are committed; report them with the failure.
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":          "import stopped",
			"file":           header.Filename,
			"inserted":       result.Inserted,
			"errors":         result.Errors,
			"stopped_at_row": result.StoppedAt,
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"file":     header.Filename,
		"inserted": result.Inserted,
		"errors":   result.Errors,
	})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reseller-backend/internal/services/reporting"
)

type ReportHandler struct {
	reports *reporting.Service
}

func NewReportHandler(rep *reporting.Service) *ReportHandler {
	return &ReportHandler{reports: rep}
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	dash, err := h.reports.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// Renewals expects ?start=YYYY-MM-DD&end=YYYY-MM-DD and an optional type of
// hosting, domain, ssl or all.
func (h *ReportHandler) Renewals(c *gin.Context) {
	items, err := h.reports.Renewals(c.Request.Context(), reporting.RenewalQuery{
		Type:  c.Query("type"),
		Start: c.Query("start"),
		End:   c.Query("end"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

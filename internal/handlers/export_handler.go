package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"reseller-backend/internal/services/transfer"
)

type ExportHandler struct {
	transfer *transfer.Service
}

func NewExportHandler(tr *transfer.Service) *ExportHandler {
	return &ExportHandler{transfer: tr}
}

// Export streams one table as a CSV attachment. The file is built in memory
// first so a failure can still be reported as JSON.
func (h *ExportHandler) Export(c *gin.Context) {
	table := c.Param("table")
	var buf bytes.Buffer
	if err := h.transfer.Export(c.Request.Context(), table, &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.csv"`, table))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

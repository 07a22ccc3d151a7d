package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GetStats returns pool, gate and registry statistics
// (GET /stats)
func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.monitor.Stats())
}

// GetReport returns an XLSX snapshot of jobs, tasks and history
// (GET /report)
func (h *Handler) GetReport(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.reporter.Write(c.Request.Context(), &buf); err != nil {
		writeError(c, err, "failed to build report")
		return
	}

	filename := fmt.Sprintf("jobrunner-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

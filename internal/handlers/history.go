package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	v1 "github.com/kubev2v/jobrunner/api/v1"
	srvErrors "github.com/kubev2v/jobrunner/pkg/errors"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetHistory returns finished jobs and tasks with filtering and pagination
// (GET /history)
func (h *Handler) GetHistory(c *gin.Context) {
	if h.historySrv == nil {
		c.JSON(http.StatusServiceUnavailable, v1.ErrorResponse{Error: "history is disabled"})
		return
	}

	var params v1.GetHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, err)
		return
	}

	// Parse pagination
	page := 1
	if params.Page > 0 {
		page = params.Page
	}
	pageSize := defaultPageSize
	if params.PageSize > 0 {
		pageSize = min(params.PageSize, maxPageSize)
	}

	svcParams, err := params.ToServiceParams(page, pageSize)
	if err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.historySrv.List(c.Request.Context(), svcParams)
	if err != nil {
		writeError(c, err, "failed to list history")
		return
	}

	// Calculate page count
	pageCount := (result.Total + pageSize - 1) / pageSize
	if pageCount == 0 {
		pageCount = 1
	}

	c.JSON(http.StatusOK, v1.HistoryListResponse{
		Page:      page,
		PageCount: pageCount,
		Total:     result.Total,
		Entries:   result.Entries,
	})
}

// GetHistoryEntry returns one history entry
// (GET /history/{id})
func (h *Handler) GetHistoryEntry(c *gin.Context) {
	if h.historySrv == nil {
		c.JSON(http.StatusServiceUnavailable, v1.ErrorResponse{Error: "history is disabled"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		writeError(c, srvErrors.NewInvalidArgumentError("id", c.Param("id")), "invalid history id")
		return
	}

	entry, err := h.historySrv.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "failed to get history entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

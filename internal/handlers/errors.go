package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/kubev2v/jobrunner/api/v1"
	srvErrors "github.com/kubev2v/jobrunner/pkg/errors"
)

// writeError maps service errors to HTTP status codes. Unexpected errors are logged
// and answered with a generic message.
func writeError(c *gin.Context, err error, msg string) {
	switch {
	case srvErrors.IsResourceNotFoundError(err):
		c.JSON(http.StatusNotFound, v1.ErrorResponse{Error: err.Error()})
	case srvErrors.IsTaskFinishedError(err):
		c.JSON(http.StatusConflict, v1.ErrorResponse{Error: err.Error()})
	case srvErrors.IsInvalidArgumentError(err):
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
	default:
		zap.S().Named("handler").Errorw(msg, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, v1.ErrorResponse{Error: msg})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
}

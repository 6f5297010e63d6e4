package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/tantasui/decentradocs/internal/middleware"
	appErr "github.com/tantasui/decentradocs/internal/pkg/errors"
	"github.com/tantasui/decentradocs/internal/pkg/response"
)

// handleError maps the service error taxonomy onto HTTP statuses.
// "Nothing to answer", "cannot answer right now" and "bad input" stay
// distinguishable for the caller.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	requestID, _ := c.Get(middleware.ContextRequestID)
	logutil.GetLogger(c.Request.Context()).Error("request failed",
		zap.Any("request_id", requestID),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	switch {
	case appErr.IsNotFound(err):
		response.Error(c, http.StatusNotFound, "not_found", "not found")
	case appErr.IsUnavailable(err):
		response.Error(c, http.StatusServiceUnavailable, "ai_unavailable", "ai provider not configured")
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, "invalid", "invalid request")
	case errors.Is(err, appErr.ErrEmptyContent):
		response.Error(c, http.StatusUnprocessableEntity, "empty_content", "document has no extractable text")
	case errors.Is(err, appErr.ErrExtraction):
		response.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "text extraction failed")
	case errors.Is(err, appErr.ErrProvider):
		response.Error(c, http.StatusBadGateway, "provider_error", "ai provider call failed")
	case errors.Is(err, appErr.ErrDimensionMismatch):
		response.Error(c, http.StatusInternalServerError, "dimension_mismatch", "embedding dimension mismatch")
	default:
		response.Error(c, http.StatusInternalServerError, "internal", "internal error")
	}
}

package apperrors

import (
	"log/slog"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - тело любого ответа с ошибкой: {"error": {...}}
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

var exposeInternals atomic.Bool

// SetDebug разрешает отдавать details у 5xx. Включается только в development.
func SetDebug(enabled bool) {
	exposeInternals.Store(enabled)
}

// HandleError пишет ошибку в ответ и прерывает цепочку gin.
// Все, что не *AppError, превращается в 500.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"code", appErr.Code,
			"domain", appErr.Domain,
			"error", appErr.Unwrap(),
		)
		if !exposeInternals.Load() {
			appErr = appErr.Clone()
			appErr.Details = nil
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

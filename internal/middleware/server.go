package middleware

import (
	"context"
	"log/slog"
	"time"

	"trainertrust_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware берет X-Request-ID клиента или генерирует новый
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggingMiddleware пишет одну строку на запрос. Пробы /health и /metrics
// уходят в debug, 4xx - warn, 5xx - error.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("route", route),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.Int("size_bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("gin_errors", c.Errors.String()))
		}

		lvl := slog.LevelInfo
		switch {
		case status >= 500:
			lvl = slog.LevelError
		case status >= 400:
			lvl = slog.LevelWarn
		case route == "/health" || route == "/metrics":
			lvl = slog.LevelDebug
		}
		logger.FromContext(c.Request.Context()).LogAttrs(c.Request.Context(), lvl, "http request", attrs...)
	}
}

type dbContextKey struct{}

const ginDBKey = "trainertrust.db"

// WithDB привязывает *gorm.DB к context запроса. DBMiddleware отдаст его
// хендлерам вместо пула (так тесты гоняют запрос внутри транзакции).
func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbContextKey{}, db)
}

// DBMiddleware кладет в gin.Context транзакцию из context запроса или пул.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tx, ok := c.Request.Context().Value(dbContextKey{}).(*gorm.DB); ok && tx != nil {
			c.Set(ginDBKey, tx)
		} else {
			c.Set(ginDBKey, db)
		}
		c.Next()
	}
}

// DBFrom возвращает *gorm.DB, положенный DBMiddleware, или nil.
func DBFrom(c *gin.Context) *gorm.DB {
	db, _ := c.Get(ginDBKey)
	tx, _ := db.(*gorm.DB)
	return tx
}

package handlers

import (
	"errors"

	"trainertrust_backend/internal/auth"
	"trainertrust_backend/internal/logger"
	"trainertrust_backend/internal/middleware"
	"trainertrust_backend/internal/validator"
	"trainertrust_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BaseHandler - общие помощники хендлеров маркетплейса: сессия, БД,
// привязка DTO и перевод ошибок сервисов в ответ.
type BaseHandler struct {
	validator   *validator.Validator
	requireAuth gin.HandlerFunc
}

func NewBaseHandler(v *validator.Validator, authenticator auth.Authenticator) *BaseHandler {
	return &BaseHandler{
		validator:   v,
		requireAuth: middleware.AuthMiddleware(authenticator),
	}
}

// RequireAuth - middleware для защищенных групп маршрутов
func (h *BaseHandler) RequireAuth() gin.HandlerFunc {
	return h.requireAuth
}

// GetDB возвращает пул или транзакцию запроса. Без DBMiddleware роутер
// собран неправильно, поэтому паникуем.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	db := middleware.DBFrom(c)
	if db == nil {
		logger.CtxError(c.Request.Context(), "db handle missing in gin context", "path", c.FullPath())
		panic("handlers: DBMiddleware is not installed")
	}
	return db
}

// BindJSON разбирает тело запроса в DTO и валидирует его.
// При ошибке ответ уже записан, хендлер просто выходит.
func (h *BaseHandler) BindJSON(c *gin.Context, obj interface{}) bool {
	return h.bind(c, obj, c.ShouldBindJSON, "Invalid request body: ")
}

// BindQuery - то же для query-параметров (фильтры списков)
func (h *BaseHandler) BindQuery(c *gin.Context, obj interface{}) bool {
	return h.bind(c, obj, c.ShouldBindQuery, "Invalid query parameters: ")
}

func (h *BaseHandler) bind(c *gin.Context, obj interface{}, decode func(interface{}) error, prefix string) bool {
	ctx := c.Request.Context()

	if err := decode(obj); err != nil {
		logger.CtxWithError(ctx, "request decoding failed", err, "path", c.FullPath())
		apperrors.HandleError(c, apperrors.NewBadRequestError(prefix+err.Error()))
		return false
	}

	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}

	var fields validator.FieldErrors
	if errors.As(err, &fields) {
		logger.CtxWarn(ctx, "request rejected by validation", "fields", map[string]string(fields), "path", c.FullPath())
		apperrors.HandleError(c, apperrors.ValidationError(fields))
		return false
	}

	logger.CtxWithError(ctx, "validator failure", err, "path", c.FullPath())
	apperrors.HandleError(c, apperrors.InternalError(err))
	return false
}

// HandleServiceError пишет ответ по ошибке сервиса. 4xx логируем как
// предупреждение, остальное уходит в HandleError как 5xx.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.HTTPCode < 500 {
		logger.CtxWarn(c.Request.Context(), "request refused",
			"code", appErr.Code,
			"domain", appErr.Domain,
			"message", appErr.Message,
			"path", c.FullPath(),
		)
	}
	apperrors.HandleError(c, err)
}

// GetSession возвращает сессию запроса или пишет 401
func (h *BaseHandler) GetSession(c *gin.Context) (*auth.Session, bool) {
	session := middleware.GetSession(c)
	if session == nil || session.UserID == "" {
		logger.CtxWarn(c.Request.Context(), "no session on protected route",
			"path", c.FullPath(),
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return nil, false
	}
	return session, true
}

// RequireParam возвращает непустой path-параметр или пишет 400
func (h *BaseHandler) RequireParam(c *gin.Context, key string) (string, bool) {
	if value := c.Param(key); value != "" {
		return value, true
	}
	apperrors.HandleError(c, apperrors.NewBadRequestError("Missing required path parameter: "+key))
	return "", false
}

package middleware

import (
	"errors"
	"strings"

	"trainertrust_backend/internal/auth"
	"trainertrust_backend/internal/logger"
	"trainertrust_backend/internal/models"
	"trainertrust_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// AuthMiddleware - проверка bearer-токена через выбранный Authenticator (JWT или Supabase)
func AuthMiddleware(authenticator auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		session, err := authenticator.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) && !errors.Is(err, auth.ErrMissingToken) {
				logger.CtxWarn(c.Request.Context(), "token verification failed", "error", err)
			}
			apperrors.HandleError(c, apperrors.ErrInvalidToken.Clone())
			return
		}

		// Сохраняем сессию в gin и в context запроса
		c.Set("userID", session.UserID)
		c.Set("role", session.Role)
		c.Set(sessionKey, session)

		ctx := auth.WithSession(c.Request.Context(), session)
		ctx = logger.WithUser(ctx, session.UserID, string(session.Role))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequirePermission - доступ только ролям с указанным разрешением
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !auth.CanPerformAction(session, permission) {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: insufficient permissions"))
			return
		}
		c.Next()
	}
}

// RequireRoles - middleware для проверки нескольких возможных ролей
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
			return
		}
		if !roleSet[session.Role] {
			apperrors.HandleError(c, apperrors.NewForbiddenError("Access denied: insufficient role"))
			return
		}
		c.Next()
	}
}

// GetSession извлекает сессию из контекста. nil - запрос не аутентифицирован.
func GetSession(c *gin.Context) *auth.Session {
	val, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	session, _ := val.(*auth.Session)
	return session
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(c *gin.Context) string {
	if session := GetSession(c); session != nil {
		return session.UserID
	}
	return ""
}

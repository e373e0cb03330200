package auth

import (
	"context"
	"errors"

	"trainertrust_backend/internal/models"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Session - текущий пользователь запроса. Передается явно, глобального состояния нет.
type Session struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email,omitempty"`
	Role   models.UserRole `json:"role,omitempty"`
}

// Authenticator проверяет bearer-токен и возвращает сессию
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Session, error)
}

// RoleResolver находит роль пользователя по его профилю
type RoleResolver interface {
	RoleFor(ctx context.Context, userID string) (models.UserRole, error)
}

type sessionKey struct{}

// WithSession кладет сессию в context
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom достает сессию из context
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*Session)
	return s, ok && s != nil
}

// resolveRole выставляет роль сессии. Источник правды - профиль; claim токена
// используется, только если профиля нет, и только trainer или company
// (Supabase кладет в role свое "authenticated").
func resolveRole(ctx context.Context, resolver RoleResolver, s *Session) {
	claimed := s.Role
	s.Role = ""
	if resolver != nil {
		if role, err := resolver.RoleFor(ctx, s.UserID); err == nil && role.IsKnown() {
			s.Role = role
			return
		}
	}
	if claimed.IsKnown() {
		s.Role = claimed
	}
}

package logger

import (
	"context"
	"log/slog"
)

// requestScope - поля запроса, которые попадают в каждую строку лога
type requestScope struct {
	requestID string
	userID    string
	role      string
}

type scopeKey struct{}

func scopeFrom(ctx context.Context) requestScope {
	if ctx == nil {
		return requestScope{}
	}
	s, _ := ctx.Value(scopeKey{}).(requestScope)
	return s
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	s := scopeFrom(ctx)
	s.requestID = requestID
	return context.WithValue(ctx, scopeKey{}, s)
}

// WithUser добавляет автора запроса. Роль пустая, пока профиль не создан.
func WithUser(ctx context.Context, userID, role string) context.Context {
	s := scopeFrom(ctx)
	s.userID, s.role = userID, role
	return context.WithValue(ctx, scopeKey{}, s)
}

func GetRequestID(ctx context.Context) string {
	return scopeFrom(ctx).requestID
}

// FromContext - глобальный логгер с request_id, user_id и user_role запроса
func FromContext(ctx context.Context) *slog.Logger {
	l := GetLogger()
	s := scopeFrom(ctx)

	var attrs []any
	if s.requestID != "" {
		attrs = append(attrs, "request_id", s.requestID)
	}
	if s.userID != "" {
		attrs = append(attrs, "user_id", s.userID)
	}
	if s.role != "" {
		attrs = append(attrs, "user_role", s.role)
	}
	if len(attrs) == 0 {
		return l
	}
	return l.With(attrs...)
}

func CtxInfo(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func CtxWarn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func CtxError(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Error(msg, args...)
}

// CtxWithError - CtxError с полем error
func CtxWithError(ctx context.Context, msg string, err error, args ...any) {
	FromContext(ctx).Error(msg, append([]any{"error", err.Error()}, args...)...)
}

package auth

import (
	"context"
	"fmt"

	supabase "github.com/nedpals/supabase-go"
)

// SupabaseAuthenticator проверяет access-токены Supabase Auth.
// Роль берется из профиля, а не из метаданных пользователя.
type SupabaseAuthenticator struct {
	client   *supabase.Client
	resolver RoleResolver
}

func NewSupabaseAuthenticator(url, key string, resolver RoleResolver) (*SupabaseAuthenticator, error) {
	if url == "" || key == "" {
		return nil, fmt.Errorf("supabase url and key must be provided")
	}
	return &SupabaseAuthenticator{
		client:   supabase.CreateClient(url, key),
		resolver: resolver,
	}, nil
}

func (a *SupabaseAuthenticator) Authenticate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	user, err := a.client.Auth.User(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if user == nil || user.ID == "" {
		return nil, ErrInvalidToken
	}

	s := &Session{UserID: user.ID, Email: user.Email}
	resolveRole(ctx, a.resolver, s)
	return s, nil
}

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"trainertrust_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	role models.UserRole
	err  error
}

func (s stubResolver) RoleFor(context.Context, string) (models.UserRole, error) {
	return s.role, s.err
}

func TestJWTAuthenticator_RoundTrip(t *testing.T) {
	a := NewJWTAuthenticator("secret", time.Hour, nil)

	token, err := a.IssueToken("user-1", "u@example.com", models.UserRoleTrainer)
	require.NoError(t, err)

	s, err := a.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", s.UserID)
	assert.Equal(t, "u@example.com", s.Email)
	assert.Equal(t, models.UserRoleTrainer, s.Role)
}

func TestJWTAuthenticator_ResolvesMissingRole(t *testing.T) {
	a := NewJWTAuthenticator("secret", time.Hour, stubResolver{role: models.UserRoleCompany})
	token, err := a.IssueToken("user-2", "", "")
	require.NoError(t, err)

	s, err := a.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleCompany, s.Role)

	// ошибка резолвера не ломает аутентификацию
	a = NewJWTAuthenticator("secret", time.Hour, stubResolver{err: errors.New("no profile")})
	s, err = a.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Empty(t, s.Role)
}

func TestJWTAuthenticator_ProfileRoleWinsOverClaim(t *testing.T) {
	ctx := context.Background()

	// Supabase выдает role=authenticated
	a := NewJWTAuthenticator("secret", time.Hour, stubResolver{role: models.UserRoleCompany})
	token, err := a.IssueToken("user-3", "", "authenticated")
	require.NoError(t, err)
	s, err := a.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleCompany, s.Role)

	// профиль важнее claim
	token, err = a.IssueToken("user-3", "", models.UserRoleTrainer)
	require.NoError(t, err)
	s, err = a.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleCompany, s.Role)

	// без профиля: известный claim остается, чужой отбрасывается
	a = NewJWTAuthenticator("secret", time.Hour, stubResolver{err: errors.New("no profile")})
	s, err = a.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleTrainer, s.Role)

	token, err = a.IssueToken("user-3", "", "authenticated")
	require.NoError(t, err)
	s, err = a.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Empty(t, s.Role)
}

func TestJWTAuthenticator_Rejects(t *testing.T) {
	a := NewJWTAuthenticator("secret", time.Hour, nil)

	_, err := a.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = a.Authenticate(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTAuthenticator("other-secret", time.Hour, nil)
	token, _ := other.IssueToken("user-1", "", models.UserRoleTrainer)
	_, err = a.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewJWTAuthenticator("secret", -time.Minute, nil)
	token, _ = expired.IssueToken("user-1", "", models.UserRoleTrainer)
	_, err = a.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTAuthenticator_RejectsOtherAlgorithms(t *testing.T) {
	a := NewJWTAuthenticator("secret", time.Hour, nil)
	claims := Claims{UserID: "user-1", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(models.UserRoleCompany, PermJobsWrite))
	assert.False(t, HasPermission(models.UserRoleTrainer, PermJobsWrite))
	assert.True(t, HasPermission(models.UserRoleTrainer, PermApplicationsWrite))
	assert.False(t, HasPermission("", PermReviewsWrite))

	assert.True(t, CanPerformAction(&Session{Role: models.UserRoleCompany}, PermApplicationsReview))
	assert.False(t, CanPerformAction(nil, PermApplicationsReview))
}

func TestSessionContext(t *testing.T) {
	_, ok := SessionFrom(context.Background())
	assert.False(t, ok)

	ctx := WithSession(context.Background(), &Session{UserID: "u"})
	s, ok := SessionFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, "u", s.UserID)
}

func TestNewSupabaseAuthenticator_RequiresConfig(t *testing.T) {
	_, err := NewSupabaseAuthenticator("", "key", nil)
	assert.Error(t, err)

	a, err := NewSupabaseAuthenticator("https://project.supabase.co", "anon-key", nil)
	require.NoError(t, err)

	_, err = a.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingToken)
}

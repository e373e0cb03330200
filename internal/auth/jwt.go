package auth

import (
	"context"
	"fmt"
	"time"

	"trainertrust_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims - содержимое access-токена
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// JWTAuthenticator проверяет HS256-токены с общим секретом
type JWTAuthenticator struct {
	secret   []byte
	ttl      time.Duration
	resolver RoleResolver
}

func NewJWTAuthenticator(secret string, ttl time.Duration, resolver RoleResolver) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret), ttl: ttl, resolver: resolver}
}

// IssueToken выпускает токен для пользователя
func (a *JWTAuthenticator) IssueToken(userID, email string, role models.UserRole) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// ParseToken проверяет подпись и срок действия токена
func (a *JWTAuthenticator) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	return claims, nil
}

func (a *JWTAuthenticator) Authenticate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	claims, err := a.ParseToken(token)
	if err != nil {
		return nil, err
	}

	s := &Session{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   models.UserRole(claims.Role),
	}
	resolveRole(ctx, a.resolver, s)
	return s, nil
}

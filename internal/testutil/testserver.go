package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trainertrust_backend/internal/app"
	"trainertrust_backend/internal/auth"
	"trainertrust_backend/internal/cache"
	"trainertrust_backend/internal/config"
	"trainertrust_backend/internal/middleware"
	"trainertrust_backend/internal/models"
	"trainertrust_backend/internal/services"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestServer - httptest сервер поверх полного роутера приложения
type TestServer struct {
	Server   *httptest.Server
	DB       *gorm.DB
	Config   *config.Config
	Auth     *auth.JWTAuthenticator
	Email    *app.MockEmailProvider
	Cache    cache.Cache
	Services *services.ServiceContainer
}

// NewTestServer создает сервер с собственной базой. Все закрывается в t.Cleanup.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	cfg := TestConfig()
	db := OpenDB(t, cfg)

	authn := auth.NewJWTAuthenticator(cfg.Auth.JWTSecret, time.Hour, app.NewProfileRoleResolver(db))
	mail := &app.MockEmailProvider{}
	c := cache.NewMemoryCache()

	router, container := app.SetupRouter(cfg, db, app.Dependencies{
		Authenticator: authn,
		Cache:         c,
		EmailProvider: mail,
		Metrics:       middleware.NewMetrics(),
	})

	server := httptest.NewServer(router)
	t.Cleanup(func() {
		server.Close()
		container.NotificationService.Wait()
	})

	return &TestServer{
		Server:   server,
		DB:       db,
		Config:   cfg,
		Auth:     authn,
		Email:    mail,
		Cache:    c,
		Services: container,
	}
}

// Token выпускает токен для профиля
func (ts *TestServer) Token(t *testing.T, profile *models.Profile) string {
	t.Helper()
	token, err := ts.Auth.IssueToken(profile.ID, profile.Email, profile.Role)
	require.NoError(t, err)
	return token
}

// SendRequest отправляет JSON запрос и возвращает ответ с телом
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "failed to encode request body")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err, "failed to build request")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "request failed")
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	require.NoError(t, err, "failed to read response body")

	return res, string(resBody)
}

// DecodeJSON разбирает тело ответа
func DecodeJSON(t *testing.T, body string, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), dest), "invalid JSON: %s", body)
}

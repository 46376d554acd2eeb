package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmoteca/catalog-api/internal/config"
	"github.com/filmoteca/catalog-api/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:    "test-secret",
		AdminCode:    "let-me-in",
		BcryptCost:   4, // minimum cost keeps the tests fast
		TokenTTLDays: 7,
	}
}

func postJSON(e *echo.Echo, path, body string, h echo.HandlerFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = h(c)
	return rec
}

func TestRegister_Success(t *testing.T) {
	h := NewAuthHandler(testConfig(), newFakeUserStore())
	e := echo.New()

	rec := postJSON(e, "/api/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"hunter2"}`, h.Register)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
}

func TestRegister_MissingFields(t *testing.T) {
	h := NewAuthHandler(testConfig(), newFakeUserStore())
	e := echo.New()

	for _, body := range []string{
		`{"email":"ada@example.com","password":"hunter2"}`,
		`{"name":"Ada","password":"hunter2"}`,
		`{"name":"Ada","email":"ada@example.com"}`,
	} {
		rec := postJSON(e, "/api/auth/register", body, h.Register)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := NewAuthHandler(testConfig(), newFakeUserStore())
	e := echo.New()

	body := `{"name":"Ada","email":"ada@example.com","password":"hunter2"}`
	rec := postJSON(e, "/api/auth/register", body, h.Register)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(e, "/api/auth/register", body, h.Register)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already registered")
}

func TestRegister_AdminCode(t *testing.T) {
	store := newFakeUserStore()
	h := NewAuthHandler(testConfig(), store)
	e := echo.New()

	rec := postJSON(e, "/api/auth/register",
		`{"name":"Eve","email":"eve@example.com","password":"pw","adminCode":"wrong"}`, h.Register)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(e, "/api/auth/register",
		`{"name":"Root","email":"root@example.com","password":"pw","adminCode":"let-me-in"}`, h.Register)
	require.Equal(t, http.StatusOK, rec.Code)

	eve, err := store.FindByEmail(nil, "eve@example.com")
	require.NoError(t, err)
	assert.False(t, eve.IsAdmin)

	root, err := store.FindByEmail(nil, "root@example.com")
	require.NoError(t, err)
	assert.True(t, root.IsAdmin)
}

func TestRegister_NoAdminCodeConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.AdminCode = "" // elevation disabled
	store := newFakeUserStore()
	h := NewAuthHandler(cfg, store)
	e := echo.New()

	// Even an empty submitted code must not match an empty configured code.
	rec := postJSON(e, "/api/auth/register",
		`{"name":"Eve","email":"eve@example.com","password":"pw","adminCode":""}`, h.Register)
	require.Equal(t, http.StatusOK, rec.Code)

	eve, err := store.FindByEmail(nil, "eve@example.com")
	require.NoError(t, err)
	assert.False(t, eve.IsAdmin)
}

func TestLogin_Success(t *testing.T) {
	cfg := testConfig()
	store := newFakeUserStore()
	h := NewAuthHandler(cfg, store)
	e := echo.New()

	rec := postJSON(e, "/api/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"hunter2","adminCode":"let-me-in"}`, h.Register)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(e, "/api/auth/login",
		`{"email":"ada@example.com","password":"hunter2"}`, h.Login)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Email   string `json:"email"`
			IsAdmin bool   `json:"isAdmin"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Ada", resp.User.Name)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.True(t, resp.User.IsAdmin)
	assert.NotContains(t, rec.Body.String(), "password")

	// The issued token must verify and carry the identity claims.
	claims, err := utils.ParseSessionToken(cfg.JWTSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "Ada", claims.Name)
	assert.True(t, claims.IsAdmin)
}

func TestLogin_MissingFields(t *testing.T) {
	h := NewAuthHandler(testConfig(), newFakeUserStore())
	e := echo.New()

	rec := postJSON(e, "/api/auth/login", `{"email":"ada@example.com"}`, h.Login)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin_BadCredentialsAreIndistinguishable(t *testing.T) {
	h := NewAuthHandler(testConfig(), newFakeUserStore())
	e := echo.New()

	rec := postJSON(e, "/api/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"hunter2"}`, h.Register)
	require.Equal(t, http.StatusOK, rec.Code)

	wrongPassword := postJSON(e, "/api/auth/login",
		`{"email":"ada@example.com","password":"nope"}`, h.Login)
	unknownUser := postJSON(e, "/api/auth/login",
		`{"email":"ghost@example.com","password":"nope"}`, h.Login)

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Code, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

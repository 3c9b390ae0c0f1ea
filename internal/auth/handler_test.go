package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFixture struct {
	*serviceFixture
	router chi.Router
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	f := newServiceFixture(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, f.service)
	middleware := Middleware{Service: f.service, Logger: logger}

	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/me", func(w http.ResponseWriter, req *http.Request) {
			user := UserFromContext(req.Context())
			require.NotNil(t, user)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(NewUserResponse(user))
		})
	})
	return &handlerFixture{serviceFixture: f, router: r}
}

func (f *handlerFixture) do(t *testing.T, method, path string, payload any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	for k, vals := range header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	f.seedUser(t, "alice@example.com", "password123", RoleRegular, true)

	rec := f.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var session sessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	assert.Equal(t, "bearer", session.TokenType)
	assert.NotEmpty(t, session.AccessToken)
}

func TestLoginEndpointRejections(t *testing.T) {
	f := newHandlerFixture(t)
	f.seedUser(t, "alice@example.com", "password123", RoleRegular, true)
	f.seedUser(t, "bob@example.com", "password123", RoleRegular, false)

	cases := []struct {
		name     string
		payload  map[string]string
		wantCode int
	}{
		{"wrong password", map[string]string{"email": "alice@example.com", "password": "wrong-password"}, http.StatusUnauthorized},
		{"unknown email", map[string]string{"email": "nobody@example.com", "password": "password123"}, http.StatusUnauthorized},
		{"inactive account", map[string]string{"email": "bob@example.com", "password": "password123"}, http.StatusUnauthorized},
		{"missing password", map[string]string{"email": "alice@example.com"}, http.StatusBadRequest},
		{"bad email format", map[string]string{"email": "not-an-email", "password": "password123"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/auth/login", tc.payload, nil)
			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestRegisterEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/auth/register", map[string]string{
		"email":     "alice@example.com",
		"password":  "password123",
		"full_name": "Alice Example",
		"role":      "regular",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alice@example.com", resp.Email)
	assert.Equal(t, "regular", resp.Role)
	assert.True(t, resp.IsActive)
	assert.False(t, resp.IsVerified)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterEndpointConflict(t *testing.T) {
	f := newHandlerFixture(t)
	f.seedUser(t, "alice@example.com", "password123", RoleRegular, true)

	rec := f.do(t, http.MethodPost, "/auth/register", map[string]string{
		"email":     "alice@example.com",
		"password":  "another-password",
		"full_name": "Impostor",
		"role":      "regular",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterEndpointValidation(t *testing.T) {
	f := newHandlerFixture(t)

	cases := []struct {
		name    string
		payload map[string]string
	}{
		{"short password", map[string]string{"email": "a@b.com", "password": "short", "full_name": "A", "role": "regular"}},
		{"unknown role", map[string]string{"email": "a@b.com", "password": "password123", "full_name": "A", "role": "superadmin"}},
		{"missing full name", map[string]string{"email": "a@b.com", "password": "password123", "role": "regular"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/auth/register", tc.payload, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRequestPasswordResetEndpointIdenticalResponses(t *testing.T) {
	f := newHandlerFixture(t)
	f.seedUser(t, "alice@example.com", "password123", RoleRegular, true)

	known := f.do(t, http.MethodPost, "/auth/request-password-reset", map[string]string{"email": "alice@example.com"}, nil)
	unknown := f.do(t, http.MethodPost, "/auth/request-password-reset", map[string]string{"email": "nobody@example.com"}, nil)

	assert.Equal(t, http.StatusAccepted, known.Code)
	assert.Equal(t, http.StatusAccepted, unknown.Code)
	assert.JSONEq(t, known.Body.String(), unknown.Body.String())
}

func TestResetPasswordEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	f.seedUser(t, "alice@example.com", "old-password", RoleRegular, true)

	require.Equal(t, http.StatusAccepted,
		f.do(t, http.MethodPost, "/auth/request-password-reset", map[string]string{"email": "alice@example.com"}, nil).Code)
	require.Len(t, f.notifier.sent, 1)
	token := tokenFromEmail(t, f.notifier.sent[0].Body)

	rec := f.do(t, http.MethodPost, "/auth/reset-password", map[string]string{
		"token":    token,
		"password": "new-password",
	}, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Replays are unauthorized.
	rec = f.do(t, http.MethodPost, "/auth/reset-password", map[string]string{
		"token":    token,
		"password": "newer-password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyEmailEndpoint(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/auth/register", map[string]string{
		"email":     "alice@example.com",
		"password":  "password123",
		"full_name": "Alice",
		"role":      "regular",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, f.notifier.sent, 1)
	token := tokenFromEmail(t, f.notifier.sent[0].Body)

	rec = f.do(t, http.MethodPost, "/auth/verify-email", map[string]string{"token": token}, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(t, http.MethodPost, "/auth/verify-email", map[string]string{"token": "garbage"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireUserMiddleware(t *testing.T) {
	f := newHandlerFixture(t)
	f.seedUser(t, "alice@example.com", "password123", RoleRegular, true)

	login := f.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, login.Code)
	var session sessionResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &session))

	t.Run("valid token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/me", nil, http.Header{"Authorization": {"Bearer " + session.AccessToken}})
		require.Equal(t, http.StatusOK, rec.Code)
		var resp UserResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "alice@example.com", resp.Email)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/me", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed scheme", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/me", nil, http.Header{"Authorization": {"Basic " + session.AccessToken}})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("tampered token", func(t *testing.T) {
		rec := f.do(t, http.MethodGet, "/me", nil, http.Header{"Authorization": {"Bearer " + session.AccessToken + "x"}})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		f.clock.Advance(2 * time.Hour)
		defer f.clock.Advance(-2 * time.Hour)
		rec := f.do(t, http.MethodGet, "/me", nil, http.Header{"Authorization": {"Bearer " + session.AccessToken}})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireUserInactiveAccount(t *testing.T) {
	f := newHandlerFixture(t)
	seeded := f.seedUser(t, "alice@example.com", "password123", RoleRegular, true)

	login := f.do(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	}, nil)
	require.Equal(t, http.StatusOK, login.Code)
	var session sessionResponse
	require.NoError(t, json.Unmarshal(login.Body.Bytes(), &session))

	seeded.IsActive = false
	require.NoError(t, f.repo.Update(context.Background(), seeded))

	rec := f.do(t, http.MethodGet, "/me", nil, http.Header{"Authorization": {"Bearer " + session.AccessToken}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

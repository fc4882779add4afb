package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turbo-fm/facility-backend-go/internal/domain/auth"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/jwt"
	"github.com/turbo-fm/facility-backend-go/internal/pkg/oauth"
)

const (
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
	handlerTestSecret     = "test-secret-key-for-jwt"
	handlerTestFrontend   = "http://localhost:5173"
)

type fakeAuthService struct {
	registerErr error
	loginErr    error
	refreshErr  error

	loggedOutRefresh string
	loggedOutAccess  string
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if f.registerErr != nil {
		return auth.RegisterResponse{}, f.registerErr
	}
	return auth.RegisterResponse{ID: "u-1", Email: req.Email, Role: "user", IsVerified: false}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if f.loginErr != nil {
		return auth.TokenResponse{}, f.loginErr
	}
	return auth.TokenResponse{AccessToken: "access", AccessTokenExpiresIn: 3600, RefreshToken: "refresh", RefreshTokenExpiresIn: 4102444800, Role: "admin"}, nil
}

func (f *fakeAuthService) LoginWithGoogle(ctx context.Context, email string, googleID string, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrAccountPending
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if f.refreshErr != nil {
		return auth.AccessTokenResponse{}, f.refreshErr
	}
	if req.RefreshToken == "" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	return auth.AccessTokenResponse{AccessToken: "new-access:" + req.RefreshToken, AccessTokenExpiresIn: 3600}, nil
}

func (f *fakeAuthService) Logout(ctx context.Context, refreshToken string, accessToken string) error {
	f.loggedOutRefresh, f.loggedOutAccess = refreshToken, accessToken
	return nil
}

func newTestAuthHandler(svc auth.AuthService, google oauth.GoogleService) AuthHandler {
	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp, false)
	return NewAuthHandler(jwtService, svc, google, handlerTestFrontend, false)
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{name: "pending account created", body: `{"email":"guard@turbo.fm","password":"password123","confirm_password":"password123"}`, wantStatus: http.StatusCreated},
		{name: "duplicate email", body: `{"email":"guard@turbo.fm"}`, svcErr: auth.ErrEmailAlreadyExists, wantStatus: http.StatusConflict},
		{name: "foreign domain", body: `{"email":"guard@gmail.com"}`, svcErr: auth.ErrEmailDomainNotAllowed, wantStatus: http.StatusForbidden},
		{name: "malformed json", body: `{`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestAuthHandler(&fakeAuthService{registerErr: tt.svcErr}, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Register(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Nil(t, findCookie(rec, "refresh_token"), "registration never issues a session")
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("sets refresh cookie", func(t *testing.T) {
		h := newTestAuthHandler(&fakeAuthService{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", jsonBody(t, auth.LoginRequest{Email: "a@turbo.fm", Password: "password123"}))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		cookie := findCookie(rec, "refresh_token")
		require.NotNil(t, cookie)
		assert.Equal(t, "refresh", cookie.Value)
		assert.True(t, cookie.HttpOnly)

		body := decodeEnvelope(t, rec)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "access", data["access_token"])
	})

	t.Run("pending account", func(t *testing.T) {
		h := newTestAuthHandler(&fakeAuthService{loginErr: auth.ErrAccountPending}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", jsonBody(t, auth.LoginRequest{Email: "a@turbo.fm", Password: "password123"}))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		body := decodeEnvelope(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "FORBIDDEN", body["error"].(map[string]interface{})["code"])
	})

	t.Run("wrong password", func(t *testing.T) {
		h := newTestAuthHandler(&fakeAuthService{loginErr: auth.ErrInvalidCredentials}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", jsonBody(t, auth.LoginRequest{Email: "a@turbo.fm", Password: "nope"}))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	h := newTestAuthHandler(&fakeAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "from-cookie"})
	rec := httptest.NewRecorder()
	h.RefreshToken(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "new-access:from-cookie", data["access_token"])

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", jsonBody(t, auth.RefreshTokenRequest{RefreshToken: "from-body"}))
	rec = httptest.NewRecorder()
	h.RefreshToken(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	data = decodeEnvelope(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "new-access:from-body", data["access_token"])

	revoked := newTestAuthHandler(&fakeAuthService{refreshErr: auth.ErrRefreshTokenRevoked}, nil)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", jsonBody(t, auth.RefreshTokenRequest{RefreshToken: "old"}))
	rec = httptest.NewRecorder()
	revoked.RefreshToken(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &fakeAuthService{}
	h := newTestAuthHandler(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "r-1"})
	req.Header.Set("Authorization", "Bearer a-1")
	rec = httptest.NewRecorder()
	h.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "r-1", svc.loggedOutRefresh)
	assert.Equal(t, "a-1", svc.loggedOutAccess)

	cleared := findCookie(rec, "refresh_token")
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestAuthHandler_Google(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		h := newTestAuthHandler(&fakeAuthService{}, nil)
		rec := httptest.NewRecorder()
		h.LoginWithGoogle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/oauth/google", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	google := oauth.NewGoogleService("client-id", "client-secret", "http://localhost:8080"+googleCallbackURL, []string{"email"})
	h := newTestAuthHandler(&fakeAuthService{}, google)

	t.Run("redirects with state cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.LoginWithGoogle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/auth/oauth/google", nil))

		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		location, err := url.Parse(rec.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "accounts.google.com", location.Host)

		state := findCookie(rec, stateCookieName)
		require.NotNil(t, state)
		assert.Equal(t, state.Value, location.Query().Get("state"))
	})

	t.Run("state mismatch", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, googleCallbackURL+"?state=other&code=abc", nil)
		req.AddCookie(&http.Cookie{Name: stateCookieName, Value: "issued"})
		rec := httptest.NewRecorder()
		h.OAuthCallbackGoogle(rec, req)

		require.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, handlerTestFrontend+"/auth/callback/google?error=state_mismatch", rec.Header().Get("Location"))
	})

	t.Run("provider error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.OAuthCallbackGoogle(rec, httptest.NewRequest(http.MethodGet, googleCallbackURL+"?error=access_denied", nil))

		assert.Equal(t, handlerTestFrontend+"/auth/callback/google?error=access_denied", rec.Header().Get("Location"))
	})
}

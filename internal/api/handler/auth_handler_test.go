package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/expertbridge/marketplace-api/internal/api/middleware"
	"github.com/expertbridge/marketplace-api/internal/core/domain"
	"github.com/expertbridge/marketplace-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn     func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error)
	signInFn       func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	oauthFn        func(ctx context.Context, email string) (*ports.AuthResult, error)
	signOutFn      func(ctx context.Context, tokenID string, expiresAt time.Time) error
	requestResetFn func(ctx context.Context, email string) (string, error)
	resetFn        func(ctx context.Context, token, newPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubAuthService) OAuthSignIn(ctx context.Context, email string) (*ports.AuthResult, error) {
	return s.oauthFn(ctx, email)
}

func (s *stubAuthService) SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return s.signOutFn(ctx, tokenID, expiresAt)
}

func (s *stubAuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	return s.requestResetFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.resetFn(ctx, token, newPassword)
}

func newTestContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func testAccount(role domain.Role) *domain.Account {
	return &domain.Account{
		ID:        "acc_1",
		Email:     "alice@example.com",
		Role:      role,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
			if input.Email != "alice@example.com" || input.Role != "EXPERT" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return testAccount(domain.RoleExpert), nil
		},
	}
	handler := NewAuthHandler(stub, false)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"password123","role":"EXPERT"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	account, ok := resp["account"].(map[string]any)
	if !ok {
		t.Fatalf("expected account in response")
	}
	if account["role"] != "EXPERT" || account["email"] != "alice@example.com" {
		t.Fatalf("unexpected account payload: %+v", account)
	}
	if account["profile_complete"] != false {
		t.Fatalf("fresh account must not be profile-complete")
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, false)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"seven77"}`)

	_ = handler.Register(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	handler := NewAuthHandler(stub, false)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"password123"}`)

	_ = handler.Register(c)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidRole(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, false)

	// The oneof validation rejects unknown roles before the service runs.
	c, rec := newTestContext(e, http.MethodPost, "/api/auth/register",
		`{"email":"alice@example.com","password":"password123","role":"SUPERUSER"}`)

	_ = handler.Register(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return &ports.AuthResult{
				Token:           "signed-token",
				Account:         testAccount(domain.RoleClient),
				ProfileComplete: true,
			}, nil
		},
	}
	handler := NewAuthHandler(stub, false)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/signin",
		`{"email":"alice@example.com","password":"password123"}`)

	if err := handler.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("expected token in response, got %+v", resp)
	}

	// The token also lands in the session cookie for page navigation.
	cookies := rec.Result().Cookies()
	var found bool
	for _, ck := range cookies {
		if ck.Name == middleware.SessionCookie {
			found = true
			if ck.Value != "signed-token" || !ck.HttpOnly {
				t.Fatalf("unexpected session cookie: %+v", ck)
			}
		}
	}
	if !found {
		t.Fatalf("session cookie not set")
	}
}

func TestAuthHandler_SignIn_OpaqueFailure(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, false)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/signin",
		`{"email":"alice@example.com","password":"wrong-password"}`)

	_ = handler.SignIn(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] != "invalid credentials" {
		t.Fatalf("body must not reveal the failure mode: %+v", resp)
	}
}

func TestAuthHandler_OAuthCallback(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		oauthFn: func(ctx context.Context, email string) (*ports.AuthResult, error) {
			return &ports.AuthResult{Token: "oauth-token", Account: testAccount(domain.RoleClient)}, nil
		},
	}
	handler := NewAuthHandler(stub, false)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/oauth/callback",
		`{"email":"alice@example.com"}`)

	if err := handler.OAuthCallback(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_SignOut_ClearsCookie(t *testing.T) {
	e := echo.New()
	revokedID := ""
	stub := &stubAuthService{
		signOutFn: func(ctx context.Context, tokenID string, expiresAt time.Time) error {
			revokedID = tokenID
			return nil
		},
	}
	handler := NewAuthHandler(stub, false)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/signout", "")
	c.Set("token_id", "jti-1")
	c.Set("token_exp", time.Now().Add(time.Hour))

	if err := handler.SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if revokedID != "jti-1" {
		t.Fatalf("expected jti-1 revoked, got %q", revokedID)
	}

	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("session cookie not cleared")
	}
}

func TestAuthHandler_ResetPassword_RequestPhase(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		requestResetFn: func(ctx context.Context, email string) (string, error) {
			return "reset-token-123", nil
		},
	}

	// Production mode: the token never reaches the response body.
	handler := NewAuthHandler(stub, false)
	c, rec := newTestContext(e, http.MethodPost, "/api/auth/reset-password",
		`{"email":"alice@example.com"}`)
	if err := handler.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, leaked := resp["reset_token"]; leaked {
		t.Fatalf("reset token must not be echoed outside development")
	}

	// Development mode echoes the token for manual testing.
	devHandler := NewAuthHandler(stub, true)
	c, rec = newTestContext(e, http.MethodPost, "/api/auth/reset-password",
		`{"email":"alice@example.com"}`)
	if err := devHandler.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["reset_token"] != "reset-token-123" {
		t.Fatalf("expected echoed token in development, got %+v", resp)
	}
}

func TestAuthHandler_ResetPassword_CompletePhase(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	var gotToken, gotPassword string
	stub := &stubAuthService{
		resetFn: func(ctx context.Context, token, newPassword string) error {
			gotToken, gotPassword = token, newPassword
			return nil
		},
	}
	handler := NewAuthHandler(stub, false)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/reset-password",
		`{"token":"reset-token-123","new_password":"new-password"}`)
	if err := handler.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotToken != "reset-token-123" || gotPassword != "new-password" {
		t.Fatalf("service got %q %q", gotToken, gotPassword)
	}
}

func TestAuthHandler_ResetPassword_EmptyRequest(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewAuthHandler(&stubAuthService{}, false)

	c, rec := newTestContext(e, http.MethodPost, "/api/auth/reset-password", `{}`)
	_ = handler.ResetPassword(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

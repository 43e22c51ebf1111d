package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
)

func runPolicy(t *testing.T, path string, sess *domain.Session) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set("session", sess)
	}

	handler := AccessPolicy()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestAccessPolicy_PublicPathAllowed(t *testing.T) {
	rec := runPolicy(t, "/auth/signin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccessPolicy_AnonymousRedirectedToSignIn(t *testing.T) {
	rec := runPolicy(t, "/dashboard", nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if loc != "/auth/signin?callbackUrl=/dashboard" {
		t.Fatalf("unexpected redirect target: %s", loc)
	}
}

func TestAccessPolicy_WrongRoleRedirectedToDashboard(t *testing.T) {
	sess := &domain.Session{AccountID: "acc_1", Role: domain.RoleClient, ProfileComplete: true}
	rec := runPolicy(t, "/admin", sess)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != domain.PathDashboard {
		t.Fatalf("unexpected redirect target: %s", loc)
	}
}

func TestAccessPolicy_IncompleteClientSentToSetup(t *testing.T) {
	sess := &domain.Session{AccountID: "acc_1", Role: domain.RoleClient}
	rec := runPolicy(t, "/dashboard", sess)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != domain.PathClientSetup {
		t.Fatalf("unexpected redirect target: %s", loc)
	}
}

func TestAccessPolicy_CompleteClientReachesDashboard(t *testing.T) {
	sess := &domain.Session{AccountID: "acc_1", Role: domain.RoleClient, ProfileComplete: true}
	rec := runPolicy(t, "/dashboard", sess)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

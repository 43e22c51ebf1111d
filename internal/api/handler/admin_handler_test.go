package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
	"github.com/expertbridge/marketplace-api/internal/core/ports"
)

type stubDirectoryService struct {
	listFn    func(ctx context.Context, callerRole domain.Role) ([]ports.AccountSummary, error)
	setRoleFn func(ctx context.Context, callerRole domain.Role, accountID, newRole string) (*domain.Account, error)
}

func (s *stubDirectoryService) ListAccounts(ctx context.Context, callerRole domain.Role) ([]ports.AccountSummary, error) {
	return s.listFn(ctx, callerRole)
}

func (s *stubDirectoryService) SetRole(ctx context.Context, callerRole domain.Role, accountID string, newRole string) (*domain.Account, error) {
	return s.setRoleFn(ctx, callerRole, accountID, newRole)
}

func TestAdminHandler_ListAccounts(t *testing.T) {
	e := echo.New()
	svc := &stubDirectoryService{
		listFn: func(ctx context.Context, callerRole domain.Role) ([]ports.AccountSummary, error) {
			if callerRole != domain.RoleAdmin {
				t.Fatalf("caller role = %s", callerRole)
			}
			return []ports.AccountSummary{
				{
					ID:              "acc_1",
					Email:           "client@example.com",
					Role:            domain.RoleClient,
					ProfileComplete: true,
					CreatedAt:       time.Now().UTC(),
					ClientProfile:   &ports.ClientSummary{CompanyName: "Acme"},
				},
				{
					ID:        "acc_2",
					Email:     "expert@example.com",
					Role:      domain.RoleExpert,
					CreatedAt: time.Now().UTC(),
				},
			}, nil
		},
	}
	handler := NewAdminHandler(svc)

	c, rec := newTestContext(e, http.MethodGet, "/api/admin/users", "")
	withSession(c, domain.RoleAdmin, true)

	if err := handler.ListAccounts(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["total"] != float64(2) {
		t.Fatalf("total = %v, want 2", resp["total"])
	}
	users, ok := resp["users"].([]any)
	if !ok || len(users) != 2 {
		t.Fatalf("expected 2 users, got %+v", resp["users"])
	}
	first, _ := users[0].(map[string]any)
	if _, leaked := first["password_hash"]; leaked {
		t.Fatalf("listing must never carry credential hashes")
	}
}

func TestAdminHandler_SetRole_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	svc := &stubDirectoryService{
		setRoleFn: func(ctx context.Context, callerRole domain.Role, accountID, newRole string) (*domain.Account, error) {
			if accountID != "acc_2" || newRole != "EXPERT" {
				t.Fatalf("unexpected args: %s %s", accountID, newRole)
			}
			return testAccount(domain.RoleExpert), nil
		},
	}
	handler := NewAdminHandler(svc)

	c, rec := newTestContext(e, http.MethodPatch, "/api/admin/users",
		`{"user_id":"acc_2","role":"EXPERT"}`)
	withSession(c, domain.RoleAdmin, true)

	if err := handler.SetRole(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminHandler_SetRole_InvalidRole(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	svc := &stubDirectoryService{
		setRoleFn: func(ctx context.Context, callerRole domain.Role, accountID, newRole string) (*domain.Account, error) {
			return nil, domain.ErrInvalidRole
		},
	}
	handler := NewAdminHandler(svc)

	c, rec := newTestContext(e, http.MethodPatch, "/api/admin/users",
		`{"user_id":"acc_2","role":"SUPERUSER"}`)
	withSession(c, domain.RoleAdmin, true)

	_ = handler.SetRole(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminHandler_SetRole_UnknownAccount(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	svc := &stubDirectoryService{
		setRoleFn: func(ctx context.Context, callerRole domain.Role, accountID, newRole string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}
	handler := NewAdminHandler(svc)

	c, rec := newTestContext(e, http.MethodPatch, "/api/admin/users",
		`{"user_id":"acc_missing","role":"CLIENT"}`)
	withSession(c, domain.RoleAdmin, true)

	_ = handler.SetRole(c)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminHandler_SetRole_MissingFields(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	handler := NewAdminHandler(&stubDirectoryService{})

	c, rec := newTestContext(e, http.MethodPatch, "/api/admin/users", `{}`)
	withSession(c, domain.RoleAdmin, true)

	_ = handler.SetRole(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

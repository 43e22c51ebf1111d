package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expertbridge/marketplace-api/internal/api/middleware"
	"github.com/expertbridge/marketplace-api/internal/core/domain"
)

// PageHandler renders the JSON shells behind the policy-guarded page routes.
// The access policy middleware has already redirected anyone who should not
// be here, so these handlers only describe what the caller is looking at.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

type pageResponse struct {
	Page    string          `json:"page"`
	Viewer  *viewerResponse `json:"viewer,omitempty"`
	Message string          `json:"message,omitempty"`
}

type viewerResponse struct {
	AccountID       string      `json:"account_id"`
	Email           string      `json:"email"`
	Role            domain.Role `json:"role"`
	ProfileComplete bool        `json:"profile_complete"`
}

func viewerFrom(c echo.Context) *viewerResponse {
	sess := middleware.SessionFromContext(c)
	if sess == nil {
		return nil
	}
	return &viewerResponse{
		AccountID:       sess.AccountID,
		Email:           sess.Email,
		Role:            sess.Role,
		ProfileComplete: sess.ProfileComplete,
	}
}

// Home is the public landing page.
func (h *PageHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "home", Viewer: viewerFrom(c)})
}

// Dashboard is the signed-in landing page for every role.
func (h *PageHandler) Dashboard(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "dashboard", Viewer: viewerFrom(c)})
}

// Admin is the admin console shell.
func (h *PageHandler) Admin(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{Page: "admin", Viewer: viewerFrom(c)})
}

// ClientSetup is the client profile completion page.
func (h *PageHandler) ClientSetup(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{
		Page:    "client_profile_setup",
		Viewer:  viewerFrom(c),
		Message: "complete your company profile to continue",
	})
}

// ExpertSetup is the expert profile completion page.
func (h *PageHandler) ExpertSetup(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{
		Page:    "expert_profile_setup",
		Viewer:  viewerFrom(c),
		Message: "complete your expert profile to continue",
	})
}

// SignIn is the sign-in page. Signed-in visitors were already redirected to
// the dashboard by the access policy.
func (h *PageHandler) SignIn(c echo.Context) error {
	return c.JSON(http.StatusOK, pageResponse{
		Page:    "signin",
		Message: "sign in with your email and password or an OAuth provider",
	})
}

// AuthError reports a failed authentication attempt back to the visitor.
func (h *PageHandler) AuthError(c echo.Context) error {
	resp := pageResponse{Page: "auth_error", Message: "authentication failed"}
	if reason := c.QueryParam("error"); reason != "" {
		resp.Message = "authentication failed: " + reason
	}
	return c.JSON(http.StatusOK, resp)
}

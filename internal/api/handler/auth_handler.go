package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/expertbridge/marketplace-api/internal/api/metrics"
	"github.com/expertbridge/marketplace-api/internal/api/middleware"
	"github.com/expertbridge/marketplace-api/internal/core/domain"
	"github.com/expertbridge/marketplace-api/internal/core/ports"
)

// AuthHandler handles registration, both sign-in paths, sign-out and password
// resets.
type AuthHandler struct {
	authService ports.AuthService
	devMode     bool
}

func NewAuthHandler(authService ports.AuthService, devMode bool) *AuthHandler {
	return &AuthHandler{authService: authService, devMode: devMode}
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	account, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		CompanyName: req.CompanyName,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		case errors.Is(err, domain.ErrInvalidRole):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Message})
		}
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(account.Role)).Inc()
	return c.JSON(http.StatusCreated, authResponse{Account: toAccountResponse(account, false)})
}

// SignIn verifies credentials and returns a session token.
//
// @Summary      Sign in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/auth/signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Every failure is the same 401; the body never says which part failed.
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.SignInsTotal.WithLabelValues("credentials", "failure").Inc()
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		}
		return err
	}

	metrics.SignInsTotal.WithLabelValues("credentials", "success").Inc()
	h.setSessionCookie(c, result.Token)
	return c.JSON(http.StatusOK, authResponse{
		Token:   result.Token,
		Account: toAccountResponse(result.Account, result.ProfileComplete),
	})
}

// OAuthCallback completes an OAuth sign-in for a provider-verified email,
// creating a CLIENT account on first sign-in.
//
// @Summary      Complete an OAuth sign-in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      oauthCallbackRequest  true  "Verified identity"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/oauth/callback [post]
func (h *AuthHandler) OAuthCallback(c echo.Context) error {
	var req oauthCallbackRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	result, err := h.authService.OAuthSignIn(c.Request().Context(), req.Email)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("oauth", "failure").Inc()
		return err
	}

	metrics.SignInsTotal.WithLabelValues("oauth", "success").Inc()
	h.setSessionCookie(c, result.Token)
	return c.JSON(http.StatusOK, authResponse{
		Token:   result.Token,
		Account: toAccountResponse(result.Account, result.ProfileComplete),
	})
}

// SignOut revokes the current session token.
//
// @Summary      Sign out
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	tokenID, expiresAt := ctxToken(c)
	if err := h.authService.SignOut(c.Request().Context(), tokenID, expiresAt); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}

// ResetPassword serves both halves of the reset flow: email-only requests a
// token, token+new_password completes the reset. The response for an unknown
// email is indistinguishable from a known one.
//
// @Summary      Request or complete a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset request"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /api/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	switch {
	case req.Token != "" && req.NewPassword != "":
		if err := h.authService.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "password has been reset"})

	case req.Email != "":
		token, err := h.authService.RequestPasswordReset(c.Request().Context(), req.Email)
		if err != nil {
			return err
		}

		resp := map[string]string{
			"message": "if an account with that email exists, a reset link has been sent",
		}
		// Delivery happens by email in production; only development echoes
		// the token back for manual testing.
		if h.devMode && token != "" {
			resp["reset_token"] = token
		}
		return c.JSON(http.StatusOK, resp)
	}

	return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request parameters"})
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

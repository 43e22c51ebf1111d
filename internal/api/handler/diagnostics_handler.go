package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/expertbridge/marketplace-api/internal/core/ports"
)

// DiagnosticsHandler serves the development-only probe endpoints. The router
// registers it only when the environment is development.
type DiagnosticsHandler struct {
	mongo       *mongo.Database
	authService ports.AuthService
}

func NewDiagnosticsHandler(db *mongo.Database, authService ports.AuthService) *DiagnosticsHandler {
	return &DiagnosticsHandler{mongo: db, authService: authService}
}

// TestDB reports database connectivity and the account count.
//
// @Summary      Probe database connectivity
// @Tags         diagnostics
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      503  {object}  map[string]any
// @Router       /api/test-db [get]
func (h *DiagnosticsHandler) TestDB(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	if err := h.mongo.Client().Ping(ctx, nil); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}

	count, err := h.mongo.Collection("accounts").CountDocuments(ctx, bson.D{})
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"accounts": count,
	})
}

type testAuthRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// TestAuth registers a throwaway CLIENT account and signs it in, exercising
// the full credential path end to end.
//
// @Summary      Probe the registration and sign-in path
// @Tags         diagnostics
// @Accept       json
// @Produce      json
// @Param        body  body      testAuthRequest  true  "Throwaway credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/test-auth [post]
func (h *DiagnosticsHandler) TestAuth(c echo.Context) error {
	var req testAuthRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if _, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		return err
	}

	result, err := h.authService.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Token:   result.Token,
		Account: toAccountResponse(result.Account, result.ProfileComplete),
	})
}

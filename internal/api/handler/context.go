package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/expertbridge/marketplace-api/internal/api/middleware"
	"github.com/expertbridge/marketplace-api/internal/core/domain"
)

// ctxSession extracts the session injected by the Session middleware and
// fast-fails before any service call: a handler behind the middleware must
// never see an anonymous request or a session without an account id.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess := middleware.SessionFromContext(c)
	if sess == nil || sess.AccountID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return sess, nil
}

// ctxToken returns the token id and expiry the Session middleware recorded.
func ctxToken(c echo.Context) (tokenID string, expiresAt time.Time) {
	tokenID, _ = c.Get("token_id").(string)
	expiresAt, _ = c.Get("token_exp").(time.Time)
	return tokenID, expiresAt
}

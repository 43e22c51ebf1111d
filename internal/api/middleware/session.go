package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
)

// SessionCookie is the cookie pages carry the session token in; API clients
// use the Authorization header instead.
const SessionCookie = "session_token"

// RevocationChecker answers whether a signed-out token id is on the denylist.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Session validates the session token and injects its claims into the echo
// context: "session" (*domain.Session), "token_id", "token_exp". Requests
// without a valid, unrevoked token get 401.
func Session(secret string, revoked RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing session token")
			}

			sess, tokenID, exp, err := parseSessionToken(raw, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			if revoked != nil && tokenID != "" {
				isRevoked, err := revoked.IsRevoked(c.Request().Context(), tokenID)
				if err != nil {
					return err
				}
				if isRevoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "session revoked")
				}
			}

			c.Set("session", sess)
			c.Set("token_id", tokenID)
			c.Set("token_exp", exp)

			return next(c)
		}
	}
}

// SessionOptional parses the session token when present and otherwise lets
// the request through with no session. Page routes use it so the access
// policy can decide between Allow and a redirect.
func SessionOptional(secret string, revoked RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return next(c)
			}

			sess, tokenID, _, err := parseSessionToken(raw, secret)
			if err != nil {
				return next(c)
			}

			if revoked != nil && tokenID != "" {
				if isRevoked, err := revoked.IsRevoked(c.Request().Context(), tokenID); err != nil || isRevoked {
					return next(c)
				}
			}

			c.Set("session", sess)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return ""
	}

	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func parseSessionToken(raw, secret string) (*domain.Session, string, time.Time, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, "", time.Time{}, jwt.ErrTokenSignatureInvalid
	}

	role, _ := claims["role"].(string)
	parsedRole, ok := domain.ParseRole(role)
	if !ok {
		return nil, "", time.Time{}, jwt.ErrTokenInvalidClaims
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	complete, _ := claims["profile_complete"].(bool)
	tokenID, _ := claims["jti"].(string)

	var exp time.Time
	if e, err := claims.GetExpirationTime(); err == nil && e != nil {
		exp = e.Time
	}

	sess := &domain.Session{
		AccountID:       sub,
		Email:           email,
		Role:            parsedRole,
		ProfileComplete: complete,
	}
	return sess, tokenID, exp, nil
}

// SessionFromContext returns the session injected by Session/SessionOptional,
// or nil when the request is anonymous.
func SessionFromContext(c echo.Context) *domain.Session {
	sess, _ := c.Get("session").(*domain.Session)
	return sess
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/expertbridge/marketplace-api/internal/api/metrics"
	"github.com/expertbridge/marketplace-api/internal/core/domain"
)

// AccessPolicy applies the pure access policy to page routes: public paths
// pass, anonymous requests bounce to sign-in, wrong-role requests bounce to
// the dashboard, and an incomplete client or expert hitting the dashboard is
// sent to their setup page. Run it after SessionOptional.
func AccessPolicy() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			decision := domain.DecideAccess(path, SessionFromContext(c))

			metrics.PolicyDecisionsTotal.WithLabelValues(decisionOutcome(decision)).Inc()

			if decision.Allowed {
				return next(c)
			}
			return c.Redirect(http.StatusFound, decision.RedirectURL)
		}
	}
}

func decisionOutcome(d domain.Decision) string {
	switch {
	case d.Allowed:
		return "allow"
	case strings.HasPrefix(d.RedirectURL, domain.PathSignIn):
		return "signin_redirect"
	case d.RedirectURL == domain.PathDashboard:
		return "dashboard_redirect"
	default:
		return "setup_redirect"
	}
}

package domain

import "strings"

// Paths the policy routes to.
const (
	PathHome        = "/"
	PathSignIn      = "/auth/signin"
	PathDashboard   = "/dashboard"
	PathClientSetup = "/client/profile/setup"
	PathExpertSetup = "/expert/profile/setup"
)

// publicPrefixes are reachable without a session. PathHome is matched exactly,
// everything else by prefix.
var publicPrefixes = []string{
	"/auth/signin",
	"/auth/register",
	"/auth/error",
	"/api/auth",
	"/api/test-db",
	"/api/test-auth",
	"/health",
}

// roleGates maps a path prefix to the only role allowed beneath it.
var roleGates = []struct {
	prefix string
	role   Role
}{
	{"/admin", RoleAdmin},
	{"/client", RoleClient},
	{"/expert", RoleExpert},
}

// Decision is the outcome of an access policy evaluation: either the request
// proceeds, or the caller is redirected to RedirectURL.
type Decision struct {
	Allowed     bool
	RedirectURL string
}

// Allow is the decision that lets a request through.
func Allow() Decision { return Decision{Allowed: true} }

// RedirectTo is the decision that sends the caller elsewhere.
func RedirectTo(url string) Decision { return Decision{RedirectURL: url} }

// DecideAccess maps a request path and an optional session to an access
// decision. It is a pure function: no clock, no storage, no side effects.
//
// Evaluation order:
//  1. Public paths are allowed unconditionally.
//  2. No session: redirect to sign-in, preserving the requested path.
//  3. Role-gated prefixes: wrong role redirects to the generic dashboard.
//  4. The dashboard itself: an incomplete CLIENT or EXPERT is sent to their
//     setup page. ADMIN has no setup flow and always passes.
//
// Rule 3 runs before rule 4, so an admin with no profile is never bounced to a
// setup page, and a client hitting /expert/... is bounced to the dashboard
// before any completion check.
func DecideAccess(path string, sess *Session) Decision {
	if isPublic(path) {
		return Allow()
	}

	if sess == nil {
		return RedirectTo(PathSignIn + "?callbackUrl=" + path)
	}

	for _, gate := range roleGates {
		if strings.HasPrefix(path, gate.prefix) && sess.Role != gate.role {
			return RedirectTo(PathDashboard)
		}
	}

	if path == PathDashboard && !sess.ProfileComplete {
		switch sess.Role {
		case RoleClient:
			return RedirectTo(PathClientSetup)
		case RoleExpert:
			return RedirectTo(PathExpertSetup)
		}
	}

	return Allow()
}

func isPublic(path string) bool {
	if path == PathHome {
		return true
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

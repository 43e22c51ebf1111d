package ports

import (
	"context"
	"time"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
)

// RegisterInput carries a registration request. Role defaults to CLIENT when
// empty. CompanyName (clients) or FirstName/LastName (experts) optionally seed
// an initial, still-incomplete profile record.
type RegisterInput struct {
	Email       string
	Password    string
	Role        string
	CompanyName string
	FirstName   string
	LastName    string
}

// AuthResult is a successful sign-in: the signed session token plus the
// identity it asserts.
type AuthResult struct {
	Token           string
	Account         *domain.Account
	ProfileComplete bool
}

// AuthService implements registration and both sign-in paths.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.Account, error)
	// SignIn verifies credentials. Unknown email, OAuth-only account, and
	// wrong password are indistinguishable to the caller.
	SignIn(ctx context.Context, email, password string) (*AuthResult, error)
	// OAuthSignIn completes a provider flow for an already-verified email,
	// creating a CLIENT account on first sign-in.
	OAuthSignIn(ctx context.Context, email string) (*AuthResult, error)
	// SignOut revokes the session token id until its expiry.
	SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error
	// RequestPasswordReset issues a reset token when the account exists. The
	// returned token is empty for unknown emails; callers must not let that
	// difference reach the client.
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// SessionIssuer mints signed, expiring session tokens from identity claims.
type SessionIssuer interface {
	Issue(session domain.Session) (string, error)
}

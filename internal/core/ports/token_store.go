package ports

import (
	"context"
	"time"
)

// TokenStore holds short-lived token state: revoked session ids and pending
// password-reset tokens.
type TokenStore interface {
	// Revoke marks a session token id as revoked until its natural expiry.
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	// PutResetToken stores a password-reset token for an account with a TTL.
	PutResetToken(ctx context.Context, token, accountID string, ttl time.Duration) error
	// ConsumeResetToken returns the account id for a token and deletes it.
	// Unknown or expired tokens yield domain.ErrInvalidResetToken.
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
)

// TokenStore keeps revoked session ids and pending password-reset tokens in
// Redis. Both kinds of key expire on their own, so sign-out state never needs
// cleanup beyond the token's natural lifetime.
//
// Key formats: revoked:<jti> and pwreset:<token>.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Revoke marks a session token id revoked until the token would expire anyway.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, "revoked:"+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether a session token id has been signed out.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, "revoked:"+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

// PutResetToken stores a password-reset token pointing at an account.
func (s *TokenStore) PutResetToken(ctx context.Context, token, accountID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, "pwreset:"+token, accountID, ttl).Err(); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}
	return nil
}

// ConsumeResetToken returns the account id for a reset token and deletes it,
// so a token can only be used once.
func (s *TokenStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	accountID, err := s.client.GetDel(ctx, "pwreset:"+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidResetToken
	}
	if err != nil {
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return accountID, nil
}

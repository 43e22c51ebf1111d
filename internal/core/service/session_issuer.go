package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// JWTSessionIssuer mints HS256-signed session tokens. Role and
// profile-completion are embedded at issuance so downstream checks never need
// a database read; a fresh token is issued when completion changes.
type JWTSessionIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTSessionIssuer(secret string, ttl time.Duration) *JWTSessionIssuer {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &JWTSessionIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for the given identity claims.
func (i *JWTSessionIssuer) Issue(sess domain.Session) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":              sess.AccountID,
		"email":            sess.Email,
		"role":             string(sess.Role),
		"profile_complete": sess.ProfileComplete,
		"jti":              uuid.NewString(),
		"iat":              now.Unix(),
		"exp":              now.Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

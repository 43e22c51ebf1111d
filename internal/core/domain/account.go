package domain

import "time"

// Role is the closed set of account roles. Every account carries exactly one.
type Role string

const (
	RoleClient Role = "CLIENT"
	RoleExpert Role = "EXPERT"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole converts an incoming string to a Role, reporting whether it is one
// of the three known roles.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient, RoleExpert, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether the role is a member of the closed set.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// Account models a registered identity. PasswordHash is empty for accounts
// created through OAuth sign-in; those can never pass credential verification.
type Account struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

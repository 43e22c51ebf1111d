package domain

import "errors"

var (
	// ErrInvalidCredentials is deliberately opaque: wrong password, unknown
	// email, and OAuth-only accounts all surface as this single failure so
	// callers cannot enumerate users.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailTaken        = errors.New("account already exists with this email")
	ErrAccountNotFound   = errors.New("account not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrInvalidRole       = errors.New("role must be one of CLIENT, EXPERT, ADMIN")
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)

// ForbiddenError is an authorization failure. Unlike credential failures the
// message may name the required and actual roles; role membership is not a
// secret once a caller is authenticated.
type ForbiddenError struct {
	Required Role
	Actual   Role
}

func (e *ForbiddenError) Error() string {
	return "requires role " + string(e.Required) + ", caller has role " + string(e.Actual)
}

// ValidationError carries a field-specific message mapped to HTTP 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError from a plain message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

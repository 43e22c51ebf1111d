package handler

import "github.com/expertbridge/marketplace-api/internal/core/domain"

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=CLIENT EXPERT ADMIN"`

	// Optional profile seeds: company name for clients, first/last name for
	// experts. The seeded profile stays incomplete until setup finishes.
	CompanyName string `json:"company_name,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
}

type signInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type oauthCallbackRequest struct {
	// Email as verified by the OAuth provider; the handshake itself happens
	// upstream of this endpoint.
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Token       string `json:"token,omitempty"`
	NewPassword string `json:"new_password,omitempty"`
}

type accountResponse struct {
	ID              string      `json:"id"`
	Email           string      `json:"email"`
	Role            domain.Role `json:"role"`
	ProfileComplete bool        `json:"profile_complete"`
	CreatedAt       string      `json:"created_at"`
}

type authResponse struct {
	Token   string           `json:"token,omitempty"`
	Account *accountResponse `json:"account,omitempty"`
}

func toAccountResponse(a *domain.Account, profileComplete bool) *accountResponse {
	return &accountResponse{
		ID:              a.ID,
		Email:           a.Email,
		Role:            a.Role,
		ProfileComplete: profileComplete,
		CreatedAt:       a.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

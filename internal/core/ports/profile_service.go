package ports

import (
	"context"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
)

// ClientProfileInput carries a client profile upsert. CompanyName, Industry
// and Description are required; the rest is optional.
type ClientProfileInput struct {
	AccountID   string
	CompanyName string
	Industry    string
	Description string
	Website     string
	CompanySize string
	Location    string
	Phone       string
}

// ExpertProfileInput carries an expert profile upsert. FirstName, LastName and
// Bio are required; the rest is optional.
type ExpertProfileInput struct {
	AccountID       string
	FirstName       string
	LastName        string
	Bio             string
	Expertise       string
	YearsExperience int
	HourlyRate      float64
	Location        string
	Phone           string
	Website         string
	LinkedIn        string
}

// ProfileService owns the role-specific profile records. Every operation
// checks the caller's role itself; the HTTP layer's RBAC is a convenience on
// top, not the authority.
type ProfileService interface {
	UpsertClientProfile(ctx context.Context, callerRole domain.Role, input ClientProfileInput) (*domain.ClientProfile, error)
	GetClientProfile(ctx context.Context, callerRole domain.Role, accountID string) (*domain.ClientProfile, error)

	UpsertExpertProfile(ctx context.Context, callerRole domain.Role, input ExpertProfileInput) (*domain.ExpertProfile, error)
	GetExpertProfile(ctx context.Context, callerRole domain.Role, accountID string) (*domain.ExpertProfile, error)
}

package ports

import (
	"context"
	"time"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
)

// ClientSummary is the slice of a client profile embedded in admin listings.
type ClientSummary struct {
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry,omitempty"`
}

// ExpertSummary is the slice of an expert profile embedded in admin listings.
type ExpertSummary struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Expertise string `json:"expertise,omitempty"`
}

// AccountSummary is one row of the admin directory. It never carries a
// credential hash.
type AccountSummary struct {
	ID              string         `json:"id"`
	Email           string         `json:"email"`
	Role            domain.Role    `json:"role"`
	ProfileComplete bool           `json:"profile_complete"`
	CreatedAt       time.Time      `json:"created_at"`
	ClientProfile   *ClientSummary `json:"client_profile,omitempty"`
	ExpertProfile   *ExpertSummary `json:"expert_profile,omitempty"`
}

// DirectoryService is the admin-only view over all accounts.
type DirectoryService interface {
	ListAccounts(ctx context.Context, callerRole domain.Role) ([]AccountSummary, error)
	// SetRole reassigns an account's role. Profile records are left untouched;
	// completion is derived from whichever profile matches the new role.
	SetRole(ctx context.Context, callerRole domain.Role, accountID string, newRole string) (*domain.Account, error)
}

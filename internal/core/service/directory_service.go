package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
	"github.com/expertbridge/marketplace-api/internal/core/ports"
)

// DirectoryService is the admin view over every account.
type DirectoryService struct {
	accounts ports.AccountRepository
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewDirectoryService(accounts ports.AccountRepository, profiles ports.ProfileRepository, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{accounts: accounts, profiles: profiles, logger: logger}
}

// ListAccounts returns all accounts newest-first with embedded profile
// summaries and derived completion. Credential hashes never leave this layer.
func (s *DirectoryService) ListAccounts(ctx context.Context, callerRole domain.Role) ([]ports.AccountSummary, error) {
	if callerRole != domain.RoleAdmin {
		return nil, &domain.ForbiddenError{Required: domain.RoleAdmin, Actual: callerRole}
	}

	accounts, err := s.accounts.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(accounts))
	for _, a := range accounts {
		ids = append(ids, a.ID)
	}

	clients, err := s.profiles.FindClientsByAccounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	experts, err := s.profiles.FindExpertsByAccounts(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		summary := ports.AccountSummary{
			ID:        a.ID,
			Email:     a.Email,
			Role:      a.Role,
			CreatedAt: a.CreatedAt,
		}

		if p, ok := clients[a.ID]; ok {
			summary.ClientProfile = &ports.ClientSummary{CompanyName: p.CompanyName, Industry: p.Industry}
		}
		if p, ok := experts[a.ID]; ok {
			summary.ExpertProfile = &ports.ExpertSummary{FirstName: p.FirstName, LastName: p.LastName, Expertise: p.Expertise}
		}

		switch a.Role {
		case domain.RoleAdmin:
			summary.ProfileComplete = true
		case domain.RoleClient:
			summary.ProfileComplete = clients[a.ID].Complete()
		case domain.RoleExpert:
			summary.ProfileComplete = experts[a.ID].Complete()
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// SetRole reassigns an account's role. Profile records are left in place; the
// account's completion derives from whichever record matches the new role.
func (s *DirectoryService) SetRole(ctx context.Context, callerRole domain.Role, accountID string, newRole string) (*domain.Account, error) {
	if callerRole != domain.RoleAdmin {
		return nil, &domain.ForbiddenError{Required: domain.RoleAdmin, Actual: callerRole}
	}
	if accountID == "" {
		return nil, domain.NewValidationError("user id and role are required")
	}

	role, ok := domain.ParseRole(newRole)
	if !ok {
		return nil, domain.ErrInvalidRole
	}

	updated, err := s.accounts.UpdateRole(ctx, accountID, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", accountID).Str("role", string(role)).Msg("role reassigned")
	return updated, nil
}

package ports

import (
	"context"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
)

// ProfileRepository defines the interface for role-specific profile
// persistence. Upserts replace by owner key (account id), so repeating the
// same write is idempotent and an account can never own two profiles of the
// same type.
type ProfileRepository interface {
	UpsertClient(ctx context.Context, profile *domain.ClientProfile) (*domain.ClientProfile, error)
	FindClientByAccount(ctx context.Context, accountID string) (*domain.ClientProfile, error)
	FindClientsByAccounts(ctx context.Context, accountIDs []string) (map[string]*domain.ClientProfile, error)

	UpsertExpert(ctx context.Context, profile *domain.ExpertProfile) (*domain.ExpertProfile, error)
	FindExpertByAccount(ctx context.Context, accountID string) (*domain.ExpertProfile, error)
	FindExpertsByAccounts(ctx context.Context, accountIDs []string) (map[string]*domain.ExpertProfile, error)
}

package ports

import (
	"context"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
)

// AccountRepository defines the interface for account persistence.
type AccountRepository interface {
	// Create inserts a new account. A duplicate email yields domain.ErrEmailTaken.
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// UpdateRole sets the account role and bumps updated_at, returning the
	// updated account.
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	// ListAll returns every account ordered newest-first.
	ListAll(ctx context.Context) ([]domain.Account, error)
}

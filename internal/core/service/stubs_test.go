package service

import (
	"context"
	"strconv"
	"time"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
)

// In-memory stand-ins for the repositories and the token store. Each stub
// clones on the way in and out so tests never share pointers with the
// service under test.

type stubAccountRepo struct {
	seq      int
	accounts map[string]*domain.Account // keyed by id
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	copy := cloneAccount(account)
	r.seq++
	copy.ID = "acc_" + strconv.Itoa(r.seq)
	r.accounts[copy.ID] = cloneAccount(copy)
	return cloneAccount(copy), nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	a.Role = role
	a.UpdatedAt = time.Now().UTC()
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	a, ok := r.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordHash = hash
	a.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubAccountRepo) ListAll(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(r.accounts))
	for i := r.seq; i >= 1; i-- {
		if a, ok := r.accounts["acc_"+strconv.Itoa(i)]; ok {
			out = append(out, *cloneAccount(a))
		}
	}
	return out, nil
}

type stubProfileRepo struct {
	clients map[string]*domain.ClientProfile
	experts map[string]*domain.ExpertProfile
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{
		clients: make(map[string]*domain.ClientProfile),
		experts: make(map[string]*domain.ExpertProfile),
	}
}

func (r *stubProfileRepo) UpsertClient(_ context.Context, profile *domain.ClientProfile) (*domain.ClientProfile, error) {
	copy := *profile
	if existing, ok := r.clients[profile.AccountID]; ok {
		copy.CreatedAt = existing.CreatedAt
	} else if copy.CreatedAt.IsZero() {
		copy.CreatedAt = time.Now().UTC()
	}
	r.clients[profile.AccountID] = &copy
	clone := copy
	return &clone, nil
}

func (r *stubProfileRepo) FindClientByAccount(_ context.Context, accountID string) (*domain.ClientProfile, error) {
	p, ok := r.clients[accountID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) FindClientsByAccounts(_ context.Context, accountIDs []string) (map[string]*domain.ClientProfile, error) {
	out := make(map[string]*domain.ClientProfile)
	for _, id := range accountIDs {
		if p, ok := r.clients[id]; ok {
			clone := *p
			out[id] = &clone
		}
	}
	return out, nil
}

func (r *stubProfileRepo) UpsertExpert(_ context.Context, profile *domain.ExpertProfile) (*domain.ExpertProfile, error) {
	copy := *profile
	if existing, ok := r.experts[profile.AccountID]; ok {
		copy.CreatedAt = existing.CreatedAt
	} else if copy.CreatedAt.IsZero() {
		copy.CreatedAt = time.Now().UTC()
	}
	r.experts[profile.AccountID] = &copy
	clone := copy
	return &clone, nil
}

func (r *stubProfileRepo) FindExpertByAccount(_ context.Context, accountID string) (*domain.ExpertProfile, error) {
	p, ok := r.experts[accountID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProfileRepo) FindExpertsByAccounts(_ context.Context, accountIDs []string) (map[string]*domain.ExpertProfile, error) {
	out := make(map[string]*domain.ExpertProfile)
	for _, id := range accountIDs {
		if p, ok := r.experts[id]; ok {
			clone := *p
			out[id] = &clone
		}
	}
	return out, nil
}

type stubTokenStore struct {
	revoked map[string]bool
	resets  map[string]string // token -> account id
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{
		revoked: make(map[string]bool),
		resets:  make(map[string]string),
	}
}

func (s *stubTokenStore) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	s.revoked[tokenID] = true
	return nil
}

func (s *stubTokenStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], nil
}

func (s *stubTokenStore) PutResetToken(_ context.Context, token, accountID string, _ time.Duration) error {
	s.resets[token] = accountID
	return nil
}

func (s *stubTokenStore) ConsumeResetToken(_ context.Context, token string) (string, error) {
	accountID, ok := s.resets[token]
	if !ok {
		return "", domain.ErrInvalidResetToken
	}
	delete(s.resets, token)
	return accountID, nil
}

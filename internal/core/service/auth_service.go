package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
	"github.com/expertbridge/marketplace-api/internal/core/ports"
)

const (
	minPasswordLength = 8
	resetTokenTTL     = time.Hour
)

// dummyHash keeps credential verification constant-time when the account is
// missing or has no password hash: the bcrypt comparison runs either way.
var dummyHash = func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("credential-verifier-dummy"), bcrypt.DefaultCost)
	return h
}()

// AuthService implements registration, credential and OAuth sign-in, sign-out
// and the password reset flow.
type AuthService struct {
	accounts ports.AccountRepository
	profiles ports.ProfileRepository
	tokens   ports.TokenStore
	issuer   ports.SessionIssuer
	logger   zerolog.Logger
}

func NewAuthService(
	accounts ports.AccountRepository,
	profiles ports.ProfileRepository,
	tokens ports.TokenStore,
	issuer ports.SessionIssuer,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		accounts: accounts,
		profiles: profiles,
		tokens:   tokens,
		issuer:   issuer,
		logger:   logger,
	}
}

// Register creates a new account. Role defaults to CLIENT. When the optional
// seed fields are present, an initial profile record is created too; it stays
// incomplete until the owner finishes the setup flow.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.Account, error) {
	if input.Email == "" || input.Password == "" {
		return nil, domain.NewValidationError("email and password are required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.NewValidationError("password must be at least 8 characters long")
	}

	role := domain.RoleClient
	if input.Role != "" {
		parsed, ok := domain.ParseRole(input.Role)
		if !ok {
			return nil, domain.ErrInvalidRole
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	if err := s.seedProfile(ctx, created, input); err != nil {
		// The account exists; the owner can still complete setup later.
		s.logger.Warn().Err(err).Str("account_id", created.ID).Msg("profile seed failed")
	}

	s.logger.Info().Str("account_id", created.ID).Str("role", string(role)).Msg("account registered")

	return created, nil
}

func (s *AuthService) seedProfile(ctx context.Context, account *domain.Account, input ports.RegisterInput) error {
	now := time.Now().UTC()
	switch {
	case account.Role == domain.RoleClient && input.CompanyName != "":
		_, err := s.profiles.UpsertClient(ctx, &domain.ClientProfile{
			AccountID:   account.ID,
			CompanyName: input.CompanyName,
			UpdatedAt:   now,
		})
		return err
	case account.Role == domain.RoleExpert && input.FirstName != "" && input.LastName != "":
		_, err := s.profiles.UpsertExpert(ctx, &domain.ExpertProfile{
			AccountID: account.ID,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			UpdatedAt: now,
		})
		return err
	}
	return nil
}

// SignIn verifies an email/password pair and issues a session token. All
// failure modes collapse into ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil || account.PasswordHash == "" {
		// Burn a comparison anyway so lookup misses take as long as mismatches.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	result, err := s.issueFor(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", account.ID).Str("role", string(account.Role)).Msg("credential sign-in")
	return result, nil
}

// OAuthSignIn issues a session for a provider-verified email, creating a
// CLIENT account without a credential hash on first sign-in.
func (s *AuthService) OAuthSignIn(ctx context.Context, email string) (*ports.AuthResult, error) {
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrAccountNotFound) {
		now := time.Now().UTC()
		account, err = s.accounts.Create(ctx, &domain.Account{
			Email:         email,
			Role:          domain.RoleClient,
			EmailVerified: true,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil && errors.Is(err, domain.ErrEmailTaken) {
			// Lost a race with a concurrent first sign-in; use the winner.
			account, err = s.accounts.FindByEmail(ctx, email)
		}
		if err == nil {
			s.logger.Info().Str("account_id", account.ID).Msg("account created from oauth sign-in")
		}
	}
	if err != nil {
		return nil, err
	}

	result, err := s.issueFor(ctx, account)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SignOut revokes the token id until the token would have expired anyway.
func (s *AuthService) SignOut(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}
	return s.tokens.Revoke(ctx, tokenID, expiresAt)
}

// RequestPasswordReset stores a one-hour reset token for the account. Unknown
// emails return an empty token and no error; the HTTP layer answers both cases
// with the same generic message.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", domain.NewValidationError("email is required")
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	if err := s.tokens.PutResetToken(ctx, token, account.ID, resetTokenTTL); err != nil {
		return "", err
	}

	s.logger.Info().Str("account_id", account.ID).Msg("password reset requested")
	return token, nil
}

// ResetPassword consumes a reset token and replaces the credential hash.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrInvalidResetToken
	}
	if len(newPassword) < minPasswordLength {
		return domain.NewValidationError("password must be at least 8 characters long")
	}

	accountID, err := s.tokens.ConsumeResetToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.accounts.UpdatePasswordHash(ctx, accountID, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("account_id", accountID).Msg("password reset completed")
	return nil
}

func (s *AuthService) issueFor(ctx context.Context, account *domain.Account) (*ports.AuthResult, error) {
	complete, err := profileComplete(ctx, s.profiles, account)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(domain.Session{
		AccountID:       account.ID,
		Email:           account.Email,
		Role:            account.Role,
		ProfileComplete: complete,
	})
	if err != nil {
		return nil, err
	}

	return &ports.AuthResult{Token: token, Account: account, ProfileComplete: complete}, nil
}

// profileComplete derives completion from the profile record matching the
// account's current role. There is no stored flag to go stale: a role change
// simply changes which record is consulted.
func profileComplete(ctx context.Context, profiles ports.ProfileRepository, account *domain.Account) (bool, error) {
	switch account.Role {
	case domain.RoleAdmin:
		return true, nil
	case domain.RoleClient:
		p, err := profiles.FindClientByAccount(ctx, account.ID)
		if errors.Is(err, domain.ErrProfileNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return p.Complete(), nil
	case domain.RoleExpert:
		p, err := profiles.FindExpertByAccount(ctx, account.ID)
		if errors.Is(err, domain.ErrProfileNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return p.Complete(), nil
	}
	return false, nil
}

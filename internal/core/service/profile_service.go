package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/expertbridge/marketplace-api/internal/core/domain"
	"github.com/expertbridge/marketplace-api/internal/core/ports"
)

// ProfileService owns client and expert profile records. Upserts replace the
// single record keyed by the owning account, so a repeated submit is a no-op
// beyond refreshing updated_at.
type ProfileService struct {
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewProfileService(profiles ports.ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, logger: logger}
}

// UpsertClientProfile creates or replaces the caller's client profile.
func (s *ProfileService) UpsertClientProfile(ctx context.Context, callerRole domain.Role, input ports.ClientProfileInput) (*domain.ClientProfile, error) {
	if callerRole != domain.RoleClient {
		return nil, &domain.ForbiddenError{Required: domain.RoleClient, Actual: callerRole}
	}
	if input.CompanyName == "" || input.Industry == "" || input.Description == "" {
		return nil, domain.NewValidationError("company name, industry, and description are required")
	}

	profile, err := s.profiles.UpsertClient(ctx, &domain.ClientProfile{
		AccountID:   input.AccountID,
		CompanyName: input.CompanyName,
		Industry:    input.Industry,
		Description: input.Description,
		Website:     input.Website,
		CompanySize: input.CompanySize,
		Location:    input.Location,
		Phone:       input.Phone,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", input.AccountID).Msg("client profile upsert failed")
		return nil, err
	}

	s.logger.Info().Str("account_id", input.AccountID).Msg("client profile saved")
	return profile, nil
}

// GetClientProfile returns the caller's client profile.
func (s *ProfileService) GetClientProfile(ctx context.Context, callerRole domain.Role, accountID string) (*domain.ClientProfile, error) {
	if callerRole != domain.RoleClient {
		return nil, &domain.ForbiddenError{Required: domain.RoleClient, Actual: callerRole}
	}
	return s.profiles.FindClientByAccount(ctx, accountID)
}

// UpsertExpertProfile creates or replaces the caller's expert profile.
func (s *ProfileService) UpsertExpertProfile(ctx context.Context, callerRole domain.Role, input ports.ExpertProfileInput) (*domain.ExpertProfile, error) {
	if callerRole != domain.RoleExpert {
		return nil, &domain.ForbiddenError{Required: domain.RoleExpert, Actual: callerRole}
	}
	if input.FirstName == "" || input.LastName == "" || input.Bio == "" {
		return nil, domain.NewValidationError("first name, last name, and bio are required")
	}

	profile, err := s.profiles.UpsertExpert(ctx, &domain.ExpertProfile{
		AccountID:       input.AccountID,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Bio:             input.Bio,
		Expertise:       input.Expertise,
		YearsExperience: input.YearsExperience,
		HourlyRate:      input.HourlyRate,
		Location:        input.Location,
		Phone:           input.Phone,
		Website:         input.Website,
		LinkedIn:        input.LinkedIn,
		UpdatedAt:       time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", input.AccountID).Msg("expert profile upsert failed")
		return nil, err
	}

	s.logger.Info().Str("account_id", input.AccountID).Msg("expert profile saved")
	return profile, nil
}

// GetExpertProfile returns the caller's expert profile.
func (s *ProfileService) GetExpertProfile(ctx context.Context, callerRole domain.Role, accountID string) (*domain.ExpertProfile, error) {
	if callerRole != domain.RoleExpert {
		return nil, &domain.ForbiddenError{Required: domain.RoleExpert, Actual: callerRole}
	}
	return s.profiles.FindExpertByAccount(ctx, accountID)
}

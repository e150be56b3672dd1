package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ayursutra/ayursutra/internal/cache"
	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/domain/profile"
	"github.com/ayursutra/ayursutra/internal/events"
)

type ProfileService struct {
	repo  profile.Repository
	cache *cache.Store
	bus   *events.Bus
	log   *zap.Logger
}

func NewProfileService(repo profile.Repository, cache *cache.Store, bus *events.Bus, log *zap.Logger) *ProfileService {
	return &ProfileService{
		repo:  repo,
		cache: cache,
		bus:   bus,
		log:   log,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, claims domain.Claims) (*profile.Profile, error) {
	key := cache.Key{Kind: domain.KindProfiles, OwnerID: claims.UserID}
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) (*profile.Profile, error) {
		return s.repo.GetByUserID(ctx, claims.UserID)
	})
}

func (s *ProfileService) UpdateProfile(ctx context.Context, claims domain.Claims, cmd *profile.UpdateProfileCommand) (*profile.Profile, error) {
	if err := validateUpdateProfile(cmd); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, claims.UserID, cmd)
	if err != nil {
		s.log.Error("failed to update profile", zap.String("user_id", claims.UserID.String()), zap.Error(err))
		return nil, fmt.Errorf("updating profile: %w", err)
	}

	s.cache.Invalidate(domain.KindProfiles, claims.UserID)
	s.bus.Publish(events.Event{
		Entity:     domain.KindProfiles,
		Type:       events.EventUpdate,
		OwnerID:    claims.UserID,
		ResourceID: p.ID,
		Name:       p.PractitionerName,
	})

	return p, nil
}

func validateUpdateProfile(cmd *profile.UpdateProfileCommand) error {
	var errs []string

	if cmd.ClinicName != nil && strings.TrimSpace(*cmd.ClinicName) == "" {
		errs = append(errs, "clinic_name cannot be empty")
	}
	if cmd.PractitionerName != nil && len(strings.TrimSpace(*cmd.PractitionerName)) < 2 {
		errs = append(errs, "practitioner_name must be at least 2 characters")
	}
	if cmd.Email != nil && !strings.Contains(*cmd.Email, "@") {
		errs = append(errs, "email is invalid")
	}
	if cmd.ExperienceYears != nil && *cmd.ExperienceYears < 0 {
		errs = append(errs, "experience_years cannot be negative")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/ayursutra/ayursutra/internal/domain/profile"
)

type profileRepo struct {
	s *Store
}

func (r *profileRepo) Create(_ context.Context, p *profile.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.profiles[p.UserID]; ok {
		return profile.ErrProfileAlreadyExists
	}

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := r.s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	cp := *p
	r.s.profiles[p.UserID] = &cp
	return nil
}

func (r *profileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*profile.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *profileRepo) Update(_ context.Context, userID uuid.UUID, cmd *profile.UpdateProfileCommand) (*profile.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}

	if cmd.ClinicName != nil {
		p.ClinicName = *cmd.ClinicName
	}
	if cmd.PractitionerName != nil {
		p.PractitionerName = *cmd.PractitionerName
	}
	if cmd.Email != nil {
		p.Email = *cmd.Email
	}
	if cmd.Phone != nil {
		p.Phone = *cmd.Phone
	}
	if cmd.Address != nil {
		p.Address = *cmd.Address
	}
	if cmd.Specialization != nil {
		p.Specialization = *cmd.Specialization
	}
	if cmd.ExperienceYears != nil {
		p.ExperienceYears = *cmd.ExperienceYears
	}
	p.UpdatedAt = r.s.touched(p.UpdatedAt)

	cp := *p
	return &cp, nil
}

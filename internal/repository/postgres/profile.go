package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayursutra/ayursutra/internal/domain/profile"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&profile.Profile{}).
		Where("user_id = ?", p.UserID).Count(&count).Error; err != nil {
		return fmt.Errorf("checking profile uniqueness: %w", err)
	}
	if count > 0 {
		return profile.ErrProfileAlreadyExists
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	var p profile.Profile
	err := r.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, profile.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepository) Update(ctx context.Context, userID uuid.UUID, cmd *profile.UpdateProfileCommand) (*profile.Profile, error) {
	updates := map[string]any{}
	if cmd.ClinicName != nil {
		updates["clinic_name"] = *cmd.ClinicName
	}
	if cmd.PractitionerName != nil {
		updates["practitioner_name"] = *cmd.PractitionerName
	}
	if cmd.Email != nil {
		updates["email"] = *cmd.Email
	}
	if cmd.Phone != nil {
		updates["phone"] = *cmd.Phone
	}
	if cmd.Address != nil {
		updates["address"] = *cmd.Address
	}
	if cmd.Specialization != nil {
		updates["specialization"] = *cmd.Specialization
	}
	if cmd.ExperienceYears != nil {
		updates["experience_years"] = *cmd.ExperienceYears
	}

	if len(updates) == 0 {
		return r.GetByUserID(ctx, userID)
	}

	res := r.db.WithContext(ctx).Model(&profile.Profile{}).Where("user_id = ?", userID).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("updating profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, profile.ErrProfileNotFound
	}
	return r.GetByUserID(ctx, userID)
}

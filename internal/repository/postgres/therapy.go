package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayursutra/ayursutra/internal/domain/therapy"
)

type TherapyRepository struct {
	db *gorm.DB
}

func NewTherapyRepository(db *gorm.DB) *TherapyRepository {
	return &TherapyRepository{db: db}
}

func (r *TherapyRepository) Create(ctx context.Context, t *therapy.Therapy) error {
	if t.Status == "" {
		t.Status = therapy.StatusScheduled
	}
	if t.DurationMinutes == 0 {
		t.DurationMinutes = therapy.DefaultDurationMinutes
	}
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("inserting therapy: %w", err)
	}
	return nil
}

func (r *TherapyRepository) GetByID(ctx context.Context, id uuid.UUID) (*therapy.Therapy, error) {
	var t therapy.Therapy
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, therapy.ErrTherapyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying therapy: %w", err)
	}
	return &t, nil
}

func (r *TherapyRepository) Update(ctx context.Context, id uuid.UUID, cmd *therapy.UpdateTherapyCommand) (*therapy.Therapy, error) {
	updates := map[string]any{}
	if cmd.Name != nil {
		updates["name"] = *cmd.Name
	}
	if cmd.Type != nil {
		updates["type"] = *cmd.Type
	}
	if cmd.ScheduledDate != nil {
		updates["scheduled_date"] = *cmd.ScheduledDate
	}
	if cmd.ScheduledTime != nil {
		updates["scheduled_time"] = *cmd.ScheduledTime
	}
	if cmd.DurationMinutes != nil {
		updates["duration_minutes"] = *cmd.DurationMinutes
	}
	if cmd.Precautions != nil {
		updates["precautions"] = *cmd.Precautions
	}
	if cmd.Notes != nil {
		updates["notes"] = *cmd.Notes
	}
	if cmd.Status != nil {
		updates["status"] = *cmd.Status
	}

	if len(updates) == 0 {
		t, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
			return nil, fmt.Errorf("touching therapy: %w", err)
		}
		return r.GetByID(ctx, id)
	}

	res := r.db.WithContext(ctx).Model(&therapy.Therapy{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("updating therapy: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, therapy.ErrTherapyNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *TherapyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&therapy.Therapy{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting therapy: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return therapy.ErrTherapyNotFound
	}
	return nil
}

func (r *TherapyRepository) ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*therapy.Therapy, error) {
	var out []*therapy.Therapy
	err := r.db.WithContext(ctx).
		Where("practitioner_id = ?", practitionerID).
		Order("scheduled_date ASC, scheduled_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing therapies: %w", err)
	}
	return out, nil
}

func (r *TherapyRepository) ListByDate(ctx context.Context, date string, practitionerID uuid.UUID) ([]*therapy.Therapy, error) {
	var out []*therapy.Therapy
	err := r.db.WithContext(ctx).
		Where("practitioner_id = ? AND scheduled_date = ?", practitionerID, date).
		Order("scheduled_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing therapies by date: %w", err)
	}
	return out, nil
}

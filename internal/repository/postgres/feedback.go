package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayursutra/ayursutra/internal/domain/feedback"
)

type FeedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *feedback.Feedback) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("inserting feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) GetByID(ctx context.Context, id uuid.UUID) (*feedback.Feedback, error) {
	var f feedback.Feedback
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, feedback.ErrFeedbackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying feedback: %w", err)
	}
	return &f, nil
}

func (r *FeedbackRepository) Update(ctx context.Context, id uuid.UUID, cmd *feedback.UpdateFeedbackCommand) (*feedback.Feedback, error) {
	updates := map[string]any{}
	if cmd.Rating != nil {
		updates["rating"] = *cmd.Rating
	}
	if cmd.Comment != nil {
		updates["comment"] = *cmd.Comment
	}
	if cmd.WasFlagged != nil {
		updates["was_flagged"] = *cmd.WasFlagged
	}
	if cmd.FollowUpRequired != nil {
		updates["follow_up_required"] = *cmd.FollowUpRequired
	}

	if len(updates) == 0 {
		f, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Save(f).Error; err != nil {
			return nil, fmt.Errorf("touching feedback: %w", err)
		}
		return r.GetByID(ctx, id)
	}

	res := r.db.WithContext(ctx).Model(&feedback.Feedback{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("updating feedback: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, feedback.ErrFeedbackNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *FeedbackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&feedback.Feedback{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting feedback: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return feedback.ErrFeedbackNotFound
	}
	return nil
}

// ListByPractitioner scopes through the therapy relation: feedback rows
// belong to whichever practitioner owns the referenced therapy.
func (r *FeedbackRepository) ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*feedback.Feedback, error) {
	var out []*feedback.Feedback
	err := r.db.WithContext(ctx).
		Joins("JOIN clinical.therapies t ON t.id = clinical.feedback.therapy_id").
		Where("t.practitioner_id = ?", practitionerID).
		Order("clinical.feedback.created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing feedback: %w", err)
	}
	return out, nil
}

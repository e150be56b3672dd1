package feedback

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists new feedback. The caller verifies the therapy and
	// patient relations first.
	Create(ctx context.Context, f *Feedback) error

	// GetByID retrieves feedback by primary key. Returns ErrFeedbackNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Feedback, error)

	// Update applies partial updates and refreshes updated_at.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdateFeedbackCommand) (*Feedback, error)

	// Delete removes the feedback record. Hard delete.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByPractitioner returns feedback whose therapy belongs to the
	// practitioner, most recent first. Scoping runs through the therapy
	// relation, not a column on feedback itself.
	ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*Feedback, error)
}

package therapy

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new therapy. The caller is responsible for having
	// verified that PatientID resolves to an existing patient.
	Create(ctx context.Context, t *Therapy) error

	// GetByID retrieves a therapy by primary key. Returns ErrTherapyNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Therapy, error)

	// Update applies partial updates and refreshes updated_at.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdateTherapyCommand) (*Therapy, error)

	// Delete removes the therapy record. Hard delete.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByPractitioner returns the practitioner's therapies ordered by
	// scheduled date then time, ascending.
	ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*Therapy, error)

	// ListByDate returns the practitioner's therapies on one calendar date,
	// ordered by scheduled time.
	ListByDate(ctx context.Context, date string, practitionerID uuid.UUID) ([]*Therapy, error)
}

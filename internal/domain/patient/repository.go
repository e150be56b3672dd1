package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new patient, assigning identity and both timestamps.
	Create(ctx context.Context, p *Patient) error

	// GetByID retrieves a patient by primary key. Returns ErrPatientNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)

	// Update applies partial updates and refreshes updated_at.
	Update(ctx context.Context, id uuid.UUID, cmd *UpdatePatientCommand) (*Patient, error)

	// Delete removes the patient record. Hard delete; returns ErrPatientNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByPractitioner returns the practitioner's patients, most recently
	// created first.
	ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*Patient, error)
}

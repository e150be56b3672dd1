package profile

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// Create persists a new profile. Returns ErrProfileAlreadyExists when
	// the user already has one.
	Create(ctx context.Context, p *Profile) error

	// GetByUserID retrieves the profile owned by a user. Returns
	// ErrProfileNotFound if absent.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)

	// Update applies partial updates to the user's profile and refreshes
	// updated_at.
	Update(ctx context.Context, userID uuid.UUID, cmd *UpdateProfileCommand) (*Profile, error)
}

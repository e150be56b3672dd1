// Package postgres implements the repository interfaces on top of gorm.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayursutra/ayursutra/internal/domain/patient"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	if p.Status == "" {
		p.Status = patient.StatusActive
	}
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("inserting patient: %w", err)
	}
	return nil
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying patient: %w", err)
	}
	return &p, nil
}

func (r *PatientRepository) Update(ctx context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	updates := map[string]any{}
	if cmd.Name != nil {
		updates["name"] = *cmd.Name
	}
	if cmd.Email != nil {
		updates["email"] = *cmd.Email
	}
	if cmd.Phone != nil {
		updates["phone"] = *cmd.Phone
	}
	if cmd.PrimaryDosha != nil {
		updates["primary_dosha"] = *cmd.PrimaryDosha
	}
	if cmd.SecondaryDosha != nil {
		updates["secondary_dosha"] = *cmd.SecondaryDosha
	}
	if cmd.Age != nil {
		updates["age"] = *cmd.Age
	}
	if cmd.Gender != nil {
		updates["gender"] = *cmd.Gender
	}
	if cmd.Address != nil {
		updates["address"] = *cmd.Address
	}
	if cmd.MedicalHistory != nil {
		updates["medical_history"] = *cmd.MedicalHistory
	}
	if cmd.Allergies != nil {
		updates["allergies"] = *cmd.Allergies
	}
	if cmd.Status != nil {
		updates["status"] = *cmd.Status
	}

	// An empty partial update still refreshes updated_at; gorm only does
	// that when at least one column changes, so fetch-and-save instead.
	if len(updates) == 0 {
		p, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
			return nil, fmt.Errorf("touching patient: %w", err)
		}
		return r.GetByID(ctx, id)
	}

	res := r.db.WithContext(ctx).Model(&patient.Patient{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("updating patient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, patient.ErrPatientNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&patient.Patient{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("deleting patient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return patient.ErrPatientNotFound
	}
	return nil
}

func (r *PatientRepository) ListByPractitioner(ctx context.Context, practitionerID uuid.UUID) ([]*patient.Patient, error) {
	var out []*patient.Patient
	err := r.db.WithContext(ctx).
		Where("practitioner_id = ?", practitionerID).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing patients: %w", err)
	}
	return out, nil
}

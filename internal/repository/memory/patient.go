package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ayursutra/ayursutra/internal/domain/patient"
)

type patientRepo struct {
	s *Store
}

func (r *patientRepo) Create(_ context.Context, p *patient.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := r.s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = patient.StatusActive
	}

	cp := clonePatient(p)
	r.s.patients[p.ID] = cp
	return nil
}

func (r *patientRepo) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return clonePatient(p), nil
}

func (r *patientRepo) Update(_ context.Context, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}

	if cmd.Name != nil {
		p.Name = *cmd.Name
	}
	if cmd.Email != nil {
		p.Email = *cmd.Email
	}
	if cmd.Phone != nil {
		p.Phone = *cmd.Phone
	}
	if cmd.PrimaryDosha != nil {
		p.PrimaryDosha = *cmd.PrimaryDosha
	}
	if cmd.SecondaryDosha != nil {
		d := *cmd.SecondaryDosha
		p.SecondaryDosha = &d
	}
	if cmd.Age != nil {
		age := *cmd.Age
		p.Age = &age
	}
	if cmd.Gender != nil {
		g := *cmd.Gender
		p.Gender = &g
	}
	if cmd.Address != nil {
		p.Address = *cmd.Address
	}
	if cmd.MedicalHistory != nil {
		p.MedicalHistory = *cmd.MedicalHistory
	}
	if cmd.Allergies != nil {
		p.Allergies = *cmd.Allergies
	}
	if cmd.Status != nil {
		p.Status = *cmd.Status
	}
	p.UpdatedAt = r.s.touched(p.UpdatedAt)

	return clonePatient(p), nil
}

func (r *patientRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.patients[id]; !ok {
		return patient.ErrPatientNotFound
	}
	delete(r.s.patients, id)
	return nil
}

func (r *patientRepo) ListByPractitioner(_ context.Context, practitionerID uuid.UUID) ([]*patient.Patient, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*patient.Patient, 0)
	for _, p := range r.s.patients {
		if p.PractitionerID == practitionerID {
			out = append(out, clonePatient(p))
		}
	}
	// Most recently created first.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

func clonePatient(p *patient.Patient) *patient.Patient {
	cp := *p
	if p.SecondaryDosha != nil {
		d := *p.SecondaryDosha
		cp.SecondaryDosha = &d
	}
	if p.Age != nil {
		a := *p.Age
		cp.Age = &a
	}
	if p.Gender != nil {
		g := *p.Gender
		cp.Gender = &g
	}
	return &cp
}

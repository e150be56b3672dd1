package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ayursutra/ayursutra/internal/domain/patient"
	"github.com/ayursutra/ayursutra/internal/domain/therapy"
)

type therapyRepo struct {
	s *Store
}

func (r *therapyRepo) Create(_ context.Context, t *therapy.Therapy) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.patients[t.PatientID]; !ok {
		return patient.ErrPatientNotFound
	}

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := r.s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = therapy.StatusScheduled
	}
	if t.DurationMinutes == 0 {
		t.DurationMinutes = therapy.DefaultDurationMinutes
	}

	r.s.therapies[t.ID] = cloneTherapy(t)
	return nil
}

func (r *therapyRepo) GetByID(_ context.Context, id uuid.UUID) (*therapy.Therapy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.therapies[id]
	if !ok {
		return nil, therapy.ErrTherapyNotFound
	}
	return cloneTherapy(t), nil
}

func (r *therapyRepo) Update(_ context.Context, id uuid.UUID, cmd *therapy.UpdateTherapyCommand) (*therapy.Therapy, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.therapies[id]
	if !ok {
		return nil, therapy.ErrTherapyNotFound
	}

	if cmd.Name != nil {
		t.Name = *cmd.Name
	}
	if cmd.Type != nil {
		t.Type = *cmd.Type
	}
	if cmd.ScheduledDate != nil {
		t.ScheduledDate = *cmd.ScheduledDate
	}
	if cmd.ScheduledTime != nil {
		t.ScheduledTime = *cmd.ScheduledTime
	}
	if cmd.DurationMinutes != nil {
		t.DurationMinutes = *cmd.DurationMinutes
	}
	if cmd.Precautions != nil {
		t.Precautions = append([]string(nil), (*cmd.Precautions)...)
	}
	if cmd.Notes != nil {
		t.Notes = *cmd.Notes
	}
	if cmd.Status != nil {
		t.Status = *cmd.Status
	}
	t.UpdatedAt = r.s.touched(t.UpdatedAt)

	return cloneTherapy(t), nil
}

func (r *therapyRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.therapies[id]; !ok {
		return therapy.ErrTherapyNotFound
	}
	delete(r.s.therapies, id)
	return nil
}

func (r *therapyRepo) ListByPractitioner(_ context.Context, practitionerID uuid.UUID) ([]*therapy.Therapy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*therapy.Therapy, 0)
	for _, t := range r.s.therapies {
		if t.PractitionerID == practitionerID {
			out = append(out, cloneTherapy(t))
		}
	}
	sortTherapies(out)
	return out, nil
}

func (r *therapyRepo) ListByDate(_ context.Context, date string, practitionerID uuid.UUID) ([]*therapy.Therapy, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*therapy.Therapy, 0)
	for _, t := range r.s.therapies {
		if t.PractitionerID == practitionerID && t.ScheduledDate == date {
			out = append(out, cloneTherapy(t))
		}
	}
	sortTherapies(out)
	return out, nil
}

// sortTherapies orders by scheduled date then time, ascending. The
// "2006-01-02" and "15:04" encodings sort lexicographically.
func sortTherapies(ts []*therapy.Therapy) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].ScheduledDate != ts[j].ScheduledDate {
			return ts[i].ScheduledDate < ts[j].ScheduledDate
		}
		if ts[i].ScheduledTime != ts[j].ScheduledTime {
			return ts[i].ScheduledTime < ts[j].ScheduledTime
		}
		return ts[i].CreatedAt.Before(ts[j].CreatedAt)
	})
}

func cloneTherapy(t *therapy.Therapy) *therapy.Therapy {
	cp := *t
	cp.Precautions = append([]string(nil), t.Precautions...)
	return &cp
}

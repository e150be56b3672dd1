package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/ayursutra/ayursutra/internal/domain/feedback"
	"github.com/ayursutra/ayursutra/internal/domain/patient"
	"github.com/ayursutra/ayursutra/internal/domain/therapy"
)

type feedbackRepo struct {
	s *Store
}

func (r *feedbackRepo) Create(_ context.Context, f *feedback.Feedback) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.therapies[f.TherapyID]; !ok {
		return therapy.ErrTherapyNotFound
	}
	if _, ok := r.s.patients[f.PatientID]; !ok {
		return patient.ErrPatientNotFound
	}

	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	now := r.s.now()
	f.CreatedAt = now
	f.UpdatedAt = now

	cp := *f
	r.s.feedback[f.ID] = &cp
	return nil
}

func (r *feedbackRepo) GetByID(_ context.Context, id uuid.UUID) (*feedback.Feedback, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.feedback[id]
	if !ok {
		return nil, feedback.ErrFeedbackNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *feedbackRepo) Update(_ context.Context, id uuid.UUID, cmd *feedback.UpdateFeedbackCommand) (*feedback.Feedback, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.feedback[id]
	if !ok {
		return nil, feedback.ErrFeedbackNotFound
	}

	if cmd.Rating != nil {
		f.Rating = *cmd.Rating
	}
	if cmd.Comment != nil {
		f.Comment = *cmd.Comment
	}
	if cmd.WasFlagged != nil {
		f.WasFlagged = *cmd.WasFlagged
	}
	if cmd.FollowUpRequired != nil {
		f.FollowUpRequired = *cmd.FollowUpRequired
	}
	f.UpdatedAt = r.s.touched(f.UpdatedAt)

	cp := *f
	return &cp, nil
}

func (r *feedbackRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.feedback[id]; !ok {
		return feedback.ErrFeedbackNotFound
	}
	delete(r.s.feedback, id)
	return nil
}

func (r *feedbackRepo) ListByPractitioner(_ context.Context, practitionerID uuid.UUID) ([]*feedback.Feedback, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*feedback.Feedback, 0)
	for _, f := range r.s.feedback {
		t, ok := r.s.therapies[f.TherapyID]
		if !ok || t.PractitionerID != practitionerID {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

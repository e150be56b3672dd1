package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayursutra/ayursutra/internal/cache"
	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/domain/feedback"
	"github.com/ayursutra/ayursutra/internal/domain/therapy"
	"github.com/ayursutra/ayursutra/internal/events"
)

type FeedbackService struct {
	repo        feedback.Repository
	therapyRepo therapy.Repository
	cache       *cache.Store
	bus         *events.Bus
	log         *zap.Logger
	submitted   func(rating int)
}

type FeedbackOption func(*FeedbackService)

// WithFeedbackSubmittedObserver attaches a callback fired after every
// successful create with the submitted rating.
func WithFeedbackSubmittedObserver(fn func(rating int)) FeedbackOption {
	return func(s *FeedbackService) { s.submitted = fn }
}

func NewFeedbackService(repo feedback.Repository, therapyRepo therapy.Repository, cache *cache.Store, bus *events.Bus, log *zap.Logger, opts ...FeedbackOption) *FeedbackService {
	s := &FeedbackService{
		repo:        repo,
		therapyRepo: therapyRepo,
		cache:       cache,
		bus:         bus,
		log:         log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FeedbackService) CreateFeedback(ctx context.Context, claims domain.Claims, cmd *feedback.CreateFeedbackCommand) (*feedback.Feedback, error) {
	if err := validateCreateFeedback(cmd); err != nil {
		return nil, err
	}

	t, err := s.therapyRepo.GetByID(ctx, cmd.TherapyID)
	if err != nil {
		return nil, err
	}
	if t.PractitionerID != claims.UserID {
		return nil, ErrForbidden
	}

	// PatientID is denormalized from the therapy; a caller-supplied value
	// must agree with the relation.
	patientID := cmd.PatientID
	if patientID == uuid.Nil {
		patientID = t.PatientID
	} else if patientID != t.PatientID {
		return nil, &ValidationError{Fields: []string{"patient_id does not match the therapy's patient"}}
	}

	f := &feedback.Feedback{
		TherapyID:        cmd.TherapyID,
		PatientID:        patientID,
		Rating:           cmd.Rating,
		Comment:          strings.TrimSpace(cmd.Comment),
		WasFlagged:       cmd.WasFlagged,
		FollowUpRequired: cmd.FollowUpRequired,
	}

	if err := s.repo.Create(ctx, f); err != nil {
		s.log.Error("failed to create feedback", zap.Error(err))
		return nil, fmt.Errorf("creating feedback: %w", err)
	}

	if s.submitted != nil {
		s.submitted(f.Rating)
	}
	s.cache.Invalidate(domain.KindFeedback, claims.UserID)
	s.bus.Publish(events.Event{
		Entity:     domain.KindFeedback,
		Type:       events.EventInsert,
		OwnerID:    claims.UserID,
		ResourceID: f.ID,
		Name:       t.Name,
	})

	s.log.Info("feedback created",
		zap.String("feedback_id", f.ID.String()),
		zap.String("therapy_id", f.TherapyID.String()),
		zap.Int("rating", f.Rating),
	)

	return f, nil
}

func (s *FeedbackService) GetFeedback(ctx context.Context, claims domain.Claims, id uuid.UUID) (*feedback.Feedback, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, claims, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *FeedbackService) ListFeedback(ctx context.Context, claims domain.Claims) ([]*feedback.Feedback, error) {
	key := cache.Key{Kind: domain.KindFeedback, OwnerID: claims.UserID}
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]*feedback.Feedback, error) {
		return s.repo.ListByPractitioner(ctx, claims.UserID)
	})
}

func (s *FeedbackService) UpdateFeedback(ctx context.Context, claims domain.Claims, id uuid.UUID, cmd *feedback.UpdateFeedbackCommand) (*feedback.Feedback, error) {
	if err := validateUpdateFeedback(cmd); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, claims, existing); err != nil {
		return nil, err
	}

	f, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		s.log.Error("failed to update feedback", zap.String("feedback_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("updating feedback: %w", err)
	}

	s.cache.Invalidate(domain.KindFeedback, claims.UserID)
	s.bus.Publish(events.Event{
		Entity:     domain.KindFeedback,
		Type:       events.EventUpdate,
		OwnerID:    claims.UserID,
		ResourceID: f.ID,
	})

	return f, nil
}

func (s *FeedbackService) DeleteFeedback(ctx context.Context, claims domain.Claims, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, claims, existing); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete feedback", zap.String("feedback_id", id.String()), zap.Error(err))
		return fmt.Errorf("deleting feedback: %w", err)
	}

	s.cache.Invalidate(domain.KindFeedback, claims.UserID)
	s.bus.Publish(events.Event{
		Entity:     domain.KindFeedback,
		Type:       events.EventDelete,
		OwnerID:    claims.UserID,
		ResourceID: id,
	})

	return nil
}

// authorize checks ownership through the therapy relation: feedback carries
// no practitioner column of its own.
func (s *FeedbackService) authorize(ctx context.Context, claims domain.Claims, f *feedback.Feedback) error {
	t, err := s.therapyRepo.GetByID(ctx, f.TherapyID)
	if err != nil {
		return err
	}
	if t.PractitionerID != claims.UserID {
		return ErrForbidden
	}
	return nil
}

func validateCreateFeedback(cmd *feedback.CreateFeedbackCommand) error {
	var errs []string

	if cmd.TherapyID == uuid.Nil {
		errs = append(errs, "therapy_id is required")
	}
	if cmd.Rating < feedback.MinRating || cmd.Rating > feedback.MaxRating {
		errs = append(errs, "rating must be between 1 and 5")
	}
	if len(strings.TrimSpace(cmd.Comment)) < feedback.MinCommentLength {
		errs = append(errs, "comment must be at least 10 characters")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func validateUpdateFeedback(cmd *feedback.UpdateFeedbackCommand) error {
	var errs []string

	if cmd.Rating != nil && (*cmd.Rating < feedback.MinRating || *cmd.Rating > feedback.MaxRating) {
		errs = append(errs, "rating must be between 1 and 5")
	}
	if cmd.Comment != nil && len(strings.TrimSpace(*cmd.Comment)) < feedback.MinCommentLength {
		errs = append(errs, "comment must be at least 10 characters")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayursutra/ayursutra/internal/cache"
	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/domain/patient"
	"github.com/ayursutra/ayursutra/internal/domain/therapy"
	"github.com/ayursutra/ayursutra/internal/events"
)

type TherapyService struct {
	repo        therapy.Repository
	patientRepo patient.Repository
	cache       *cache.Store
	bus         *events.Bus
	log         *zap.Logger
	created     func(status string)
}

type TherapyOption func(*TherapyService)

// WithTherapyCreatedObserver attaches a callback fired after every
// successful create with the session's initial status.
func WithTherapyCreatedObserver(fn func(status string)) TherapyOption {
	return func(s *TherapyService) { s.created = fn }
}

func NewTherapyService(repo therapy.Repository, patientRepo patient.Repository, cache *cache.Store, bus *events.Bus, log *zap.Logger, opts ...TherapyOption) *TherapyService {
	s := &TherapyService{
		repo:        repo,
		patientRepo: patientRepo,
		cache:       cache,
		bus:         bus,
		log:         log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TherapyService) CreateTherapy(ctx context.Context, claims domain.Claims, cmd *therapy.CreateTherapyCommand) (*therapy.Therapy, error) {
	if err := validateCreateTherapy(cmd); err != nil {
		return nil, err
	}

	// The patient relation must resolve and must belong to the caller.
	p, err := s.patientRepo.GetByID(ctx, cmd.PatientID)
	if err != nil {
		return nil, err
	}
	if p.PractitionerID != claims.UserID {
		return nil, ErrForbidden
	}

	status := cmd.Status
	if status == "" {
		status = therapy.StatusScheduled
	}
	duration := cmd.DurationMinutes
	if duration == 0 {
		duration = therapy.DefaultDurationMinutes
	}

	t := &therapy.Therapy{
		PatientID:       cmd.PatientID,
		Name:            strings.TrimSpace(cmd.Name),
		Type:            cmd.Type,
		ScheduledDate:   cmd.ScheduledDate,
		ScheduledTime:   cmd.ScheduledTime,
		DurationMinutes: duration,
		Precautions:     cmd.Precautions,
		Notes:           cmd.Notes,
		Status:          status,
		PractitionerID:  claims.UserID,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.log.Error("failed to create therapy", zap.Error(err))
		return nil, fmt.Errorf("creating therapy: %w", err)
	}

	if s.created != nil {
		s.created(string(t.Status))
	}
	s.invalidate(claims.UserID)
	s.bus.Publish(events.Event{
		Entity:     domain.KindTherapies,
		Type:       events.EventInsert,
		OwnerID:    claims.UserID,
		ResourceID: t.ID,
		Name:       t.Name,
		Status:     string(t.Status),
	})

	s.log.Info("therapy created",
		zap.String("therapy_id", t.ID.String()),
		zap.String("patient_id", t.PatientID.String()),
		zap.String("practitioner_id", claims.UserID.String()),
	)

	return t, nil
}

func (s *TherapyService) GetTherapy(ctx context.Context, claims domain.Claims, id uuid.UUID) (*therapy.Therapy, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.PractitionerID != claims.UserID {
		return nil, ErrForbidden
	}
	return t, nil
}

func (s *TherapyService) ListTherapies(ctx context.Context, claims domain.Claims) ([]*therapy.Therapy, error) {
	key := cache.Key{Kind: domain.KindTherapies, OwnerID: claims.UserID}
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]*therapy.Therapy, error) {
		return s.repo.ListByPractitioner(ctx, claims.UserID)
	})
}

// ListTherapiesByDate caches per calendar date under a sub-key, so a
// mutation invalidates the date views along with the full list.
func (s *TherapyService) ListTherapiesByDate(ctx context.Context, claims domain.Claims, date string) ([]*therapy.Therapy, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &ValidationError{Fields: []string{"date must be in YYYY-MM-DD format"}}
	}
	key := cache.Key{Kind: domain.KindTherapies, OwnerID: claims.UserID, Sub: date}
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]*therapy.Therapy, error) {
		return s.repo.ListByDate(ctx, date, claims.UserID)
	})
}

func (s *TherapyService) UpdateTherapy(ctx context.Context, claims domain.Claims, id uuid.UUID, cmd *therapy.UpdateTherapyCommand) (*therapy.Therapy, error) {
	if err := validateUpdateTherapy(cmd); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.PractitionerID != claims.UserID {
		return nil, ErrForbidden
	}

	t, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		s.log.Error("failed to update therapy", zap.String("therapy_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("updating therapy: %w", err)
	}

	s.invalidate(claims.UserID)
	s.bus.Publish(events.Event{
		Entity:     domain.KindTherapies,
		Type:       events.EventUpdate,
		OwnerID:    claims.UserID,
		ResourceID: t.ID,
		Name:       t.Name,
		Status:     string(t.Status),
	})

	return t, nil
}

func (s *TherapyService) DeleteTherapy(ctx context.Context, claims domain.Claims, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.PractitionerID != claims.UserID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete therapy", zap.String("therapy_id", id.String()), zap.Error(err))
		return fmt.Errorf("deleting therapy: %w", err)
	}

	s.invalidate(claims.UserID)
	s.bus.Publish(events.Event{
		Entity:     domain.KindTherapies,
		Type:       events.EventDelete,
		OwnerID:    claims.UserID,
		ResourceID: id,
		Name:       existing.Name,
	})

	return nil
}

// invalidate drops both the therapy and the feedback collections: feedback
// listings are scoped through the therapy relation, so a therapy mutation
// can change what the feedback view contains.
func (s *TherapyService) invalidate(ownerID uuid.UUID) {
	s.cache.Invalidate(domain.KindTherapies, ownerID)
	s.cache.Invalidate(domain.KindFeedback, ownerID)
}

func validateCreateTherapy(cmd *therapy.CreateTherapyCommand) error {
	var errs []string

	if cmd.PatientID == uuid.Nil {
		errs = append(errs, "patient_id is required")
	}
	if len(strings.TrimSpace(cmd.Name)) < 2 {
		errs = append(errs, "name must be at least 2 characters")
	}
	if !cmd.Type.IsValid() {
		errs = append(errs, "type is not a recognized therapy type")
	}
	if _, err := time.Parse("2006-01-02", cmd.ScheduledDate); err != nil {
		errs = append(errs, "scheduled_date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse("15:04", cmd.ScheduledTime); err != nil {
		errs = append(errs, "scheduled_time must be in HH:MM format")
	}
	if cmd.DurationMinutes != 0 &&
		(cmd.DurationMinutes < therapy.MinDurationMinutes || cmd.DurationMinutes > therapy.MaxDurationMinutes) {
		errs = append(errs, "duration_minutes must be between 15 and 480")
	}
	if cmd.Status != "" && !cmd.Status.IsValid() {
		errs = append(errs, "status is not a recognized therapy status")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func validateUpdateTherapy(cmd *therapy.UpdateTherapyCommand) error {
	var errs []string

	if cmd.Name != nil && len(strings.TrimSpace(*cmd.Name)) < 2 {
		errs = append(errs, "name must be at least 2 characters")
	}
	if cmd.Type != nil && !cmd.Type.IsValid() {
		errs = append(errs, "type is not a recognized therapy type")
	}
	if cmd.ScheduledDate != nil {
		if _, err := time.Parse("2006-01-02", *cmd.ScheduledDate); err != nil {
			errs = append(errs, "scheduled_date must be in YYYY-MM-DD format")
		}
	}
	if cmd.ScheduledTime != nil {
		if _, err := time.Parse("15:04", *cmd.ScheduledTime); err != nil {
			errs = append(errs, "scheduled_time must be in HH:MM format")
		}
	}
	if cmd.DurationMinutes != nil &&
		(*cmd.DurationMinutes < therapy.MinDurationMinutes || *cmd.DurationMinutes > therapy.MaxDurationMinutes) {
		errs = append(errs, "duration_minutes must be between 15 and 480")
	}
	if cmd.Status != nil && !cmd.Status.IsValid() {
		errs = append(errs, "status is not a recognized therapy status")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayursutra/ayursutra/internal/cache"
	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/domain/patient"
	"github.com/ayursutra/ayursutra/internal/events"
)

type PatientService struct {
	repo    patient.Repository
	cache   *cache.Store
	bus     *events.Bus
	log     *zap.Logger
	created func()
}

type PatientOption func(*PatientService)

// WithPatientCreatedObserver attaches a callback fired after every
// successful create, typically a prometheus counter increment.
func WithPatientCreatedObserver(fn func()) PatientOption {
	return func(s *PatientService) { s.created = fn }
}

func NewPatientService(repo patient.Repository, cache *cache.Store, bus *events.Bus, log *zap.Logger, opts ...PatientOption) *PatientService {
	s := &PatientService{
		repo:  repo,
		cache: cache,
		bus:   bus,
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PatientService) CreatePatient(ctx context.Context, claims domain.Claims, cmd *patient.CreatePatientCommand) (*patient.Patient, error) {
	if err := validateCreatePatient(cmd); err != nil {
		return nil, err
	}

	status := cmd.Status
	if status == "" {
		status = patient.StatusActive
	}

	p := &patient.Patient{
		Name:           strings.TrimSpace(cmd.Name),
		Email:          strings.ToLower(strings.TrimSpace(cmd.Email)),
		Phone:          strings.TrimSpace(cmd.Phone),
		PrimaryDosha:   cmd.PrimaryDosha,
		SecondaryDosha: cmd.SecondaryDosha,
		Age:            cmd.Age,
		Gender:         cmd.Gender,
		Address:        cmd.Address,
		MedicalHistory: cmd.MedicalHistory,
		Allergies:      cmd.Allergies,
		Status:         status,
		PractitionerID: claims.UserID,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, fmt.Errorf("creating patient: %w", err)
	}

	if s.created != nil {
		s.created()
	}
	s.cache.Invalidate(domain.KindPatients, claims.UserID)
	s.bus.Publish(events.Event{
		Entity:     domain.KindPatients,
		Type:       events.EventInsert,
		OwnerID:    claims.UserID,
		ResourceID: p.ID,
		Name:       p.Name,
		Status:     string(p.Status),
	})

	s.log.Info("patient created",
		zap.String("patient_id", p.ID.String()),
		zap.String("practitioner_id", claims.UserID.String()),
	)

	return p, nil
}

func (s *PatientService) GetPatient(ctx context.Context, claims domain.Claims, id uuid.UUID) (*patient.Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.PractitionerID != claims.UserID {
		return nil, ErrForbidden
	}
	return p, nil
}

// ListPatients reads through the query cache; concurrent calls for the same
// practitioner share one repository fetch.
func (s *PatientService) ListPatients(ctx context.Context, claims domain.Claims) ([]*patient.Patient, error) {
	key := cache.Key{Kind: domain.KindPatients, OwnerID: claims.UserID}
	return cache.Fetch(ctx, s.cache, key, func(ctx context.Context) ([]*patient.Patient, error) {
		return s.repo.ListByPractitioner(ctx, claims.UserID)
	})
}

func (s *PatientService) UpdatePatient(ctx context.Context, claims domain.Claims, id uuid.UUID, cmd *patient.UpdatePatientCommand) (*patient.Patient, error) {
	if err := validateUpdatePatient(cmd); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.PractitionerID != claims.UserID {
		return nil, ErrForbidden
	}

	p, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		s.log.Error("failed to update patient", zap.String("patient_id", id.String()), zap.Error(err))
		return nil, fmt.Errorf("updating patient: %w", err)
	}

	s.cache.Invalidate(domain.KindPatients, claims.UserID)
	s.bus.Publish(events.Event{
		Entity:     domain.KindPatients,
		Type:       events.EventUpdate,
		OwnerID:    claims.UserID,
		ResourceID: p.ID,
		Name:       p.Name,
		Status:     string(p.Status),
	})

	return p, nil
}

func (s *PatientService) DeletePatient(ctx context.Context, claims domain.Claims, id uuid.UUID) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.PractitionerID != claims.UserID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete patient", zap.String("patient_id", id.String()), zap.Error(err))
		return fmt.Errorf("deleting patient: %w", err)
	}

	s.cache.Invalidate(domain.KindPatients, claims.UserID)
	s.bus.Publish(events.Event{
		Entity:     domain.KindPatients,
		Type:       events.EventDelete,
		OwnerID:    claims.UserID,
		ResourceID: id,
		Name:       existing.Name,
	})

	s.log.Info("patient deleted",
		zap.String("patient_id", id.String()),
		zap.String("practitioner_id", claims.UserID.String()),
	)

	return nil
}

func validateCreatePatient(cmd *patient.CreatePatientCommand) error {
	var errs []string

	if len(strings.TrimSpace(cmd.Name)) < 2 {
		errs = append(errs, "name must be at least 2 characters")
	}
	if strings.TrimSpace(cmd.Email) == "" {
		errs = append(errs, "email is required")
	} else if !strings.Contains(cmd.Email, "@") {
		errs = append(errs, "email is invalid")
	}
	if !cmd.PrimaryDosha.IsValid() {
		errs = append(errs, "primary_dosha must be Vata, Pitta or Kapha")
	}
	if cmd.SecondaryDosha != nil && !cmd.SecondaryDosha.IsValid() {
		errs = append(errs, "secondary_dosha must be Vata, Pitta or Kapha")
	}
	if cmd.Age != nil && (*cmd.Age < 1 || *cmd.Age > 120) {
		errs = append(errs, "age must be between 1 and 120")
	}
	if cmd.Gender != nil && !cmd.Gender.IsValid() {
		errs = append(errs, "gender must be Male, Female or Other")
	}
	if cmd.Status != "" && !cmd.Status.IsValid() {
		errs = append(errs, "status must be active or inactive")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func validateUpdatePatient(cmd *patient.UpdatePatientCommand) error {
	var errs []string

	if cmd.Name != nil && len(strings.TrimSpace(*cmd.Name)) < 2 {
		errs = append(errs, "name must be at least 2 characters")
	}
	if cmd.Email != nil && !strings.Contains(*cmd.Email, "@") {
		errs = append(errs, "email is invalid")
	}
	if cmd.PrimaryDosha != nil && !cmd.PrimaryDosha.IsValid() {
		errs = append(errs, "primary_dosha must be Vata, Pitta or Kapha")
	}
	if cmd.SecondaryDosha != nil && !cmd.SecondaryDosha.IsValid() {
		errs = append(errs, "secondary_dosha must be Vata, Pitta or Kapha")
	}
	if cmd.Age != nil && (*cmd.Age < 1 || *cmd.Age > 120) {
		errs = append(errs, "age must be between 1 and 120")
	}
	if cmd.Gender != nil && !cmd.Gender.IsValid() {
		errs = append(errs, "gender must be Male, Female or Other")
	}
	if cmd.Status != nil && !cmd.Status.IsValid() {
		errs = append(errs, "status must be active or inactive")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

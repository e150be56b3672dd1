package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayursutra/ayursutra/internal/cache"
	"github.com/ayursutra/ayursutra/internal/config"
	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/domain/patient"
	"github.com/ayursutra/ayursutra/internal/domain/therapy"
	"github.com/ayursutra/ayursutra/internal/events"
	"github.com/ayursutra/ayursutra/internal/repository/memory"
	"github.com/ayursutra/ayursutra/internal/service"
	"github.com/ayursutra/ayursutra/pkg/auth"
)

// env bundles the in-memory wiring the service tests run against.
type env struct {
	store *memory.Store
	cache *cache.Store
	bus   *events.Bus

	patients *service.PatientService
	therapy  *service.TherapyService
	feedback *service.FeedbackService
	profiles *service.ProfileService
	auth     *service.AuthService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := memory.NewStore()
	c := cache.New()
	bus := events.NewBus(zap.NewNop())
	log := zap.NewNop()

	jwtManager := auth.NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-test-secret-test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		Issuer:          "ayursutra-test",
	})

	return &env{
		store:    store,
		cache:    c,
		bus:      bus,
		patients: service.NewPatientService(store.Patients(), c, bus, log),
		therapy:  service.NewTherapyService(store.Therapies(), store.Patients(), c, bus, log),
		feedback: service.NewFeedbackService(store.Feedback(), store.Therapies(), c, bus, log),
		profiles: service.NewProfileService(store.Profiles(), c, bus, log),
		auth:     service.NewAuthService(store.Users(), store.Profiles(), jwtManager, log),
	}
}

func practitioner() domain.Claims {
	return domain.Claims{UserID: uuid.New(), Email: "dr@clinic.io"}
}

func (e *env) createPatient(t *testing.T, claims domain.Claims) *patient.Patient {
	t.Helper()
	p, err := e.patients.CreatePatient(context.Background(), claims, &patient.CreatePatientCommand{
		Name:         "Asha Rao",
		Email:        "asha@example.com",
		PrimaryDosha: domain.DoshaPitta,
	})
	require.NoError(t, err)
	return p
}

func (e *env) createTherapy(t *testing.T, claims domain.Claims, patientID uuid.UUID) *therapy.Therapy {
	t.Helper()
	th, err := e.therapy.CreateTherapy(context.Background(), claims, &therapy.CreateTherapyCommand{
		PatientID:     patientID,
		Name:          "Abhyanga Massage",
		Type:          therapy.TypeAbhyanga,
		ScheduledDate: "2026-03-01",
		ScheduledTime: "10:00",
	})
	require.NoError(t, err)
	return th
}

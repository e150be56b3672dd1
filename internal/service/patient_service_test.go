package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ayursutra/ayursutra/internal/cache"
	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/domain/patient"
	"github.com/ayursutra/ayursutra/internal/events"
	"github.com/ayursutra/ayursutra/internal/repository/memory"
	"github.com/ayursutra/ayursutra/internal/service"
)

func TestCreatePatientRejectsInvalidCommand(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()

	_, err := e.patients.CreatePatient(context.Background(), claims, &patient.CreatePatientCommand{
		Name:         "A",
		Email:        "not-an-email",
		PrimaryDosha: "Agni",
	})

	var validErr *service.ValidationError
	require.ErrorAs(t, err, &validErr)
	require.Len(t, validErr.Fields, 3)

	list, listErr := e.patients.ListPatients(context.Background(), claims)
	require.NoError(t, listErr)
	require.Empty(t, list)
}

func TestCreatePatientAgeBounds(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()

	create := func(age int) error {
		_, err := e.patients.CreatePatient(context.Background(), claims, &patient.CreatePatientCommand{
			Name:         "Asha Rao",
			Email:        "asha@example.com",
			PrimaryDosha: domain.DoshaPitta,
			Age:          &age,
		})
		return err
	}

	var validErr *service.ValidationError
	require.ErrorAs(t, create(0), &validErr)
	require.ErrorAs(t, create(121), &validErr)

	require.NoError(t, create(1))
	require.NoError(t, create(120))

	// The same bounds hold on update.
	p := e.createPatient(t, claims)
	tooOld := 121
	_, err := e.patients.UpdatePatient(context.Background(), claims, p.ID, &patient.UpdatePatientCommand{Age: &tooOld})
	require.ErrorAs(t, err, &validErr)
}

func TestCreatePatientObserverCountsSuccessesOnly(t *testing.T) {
	store := memory.NewStore()
	var created int
	svc := service.NewPatientService(store.Patients(), cache.New(), events.NewBus(zap.NewNop()), zap.NewNop(),
		service.WithPatientCreatedObserver(func() { created++ }))
	claims := practitioner()

	_, err := svc.CreatePatient(context.Background(), claims, &patient.CreatePatientCommand{
		Name:         "Asha Rao",
		Email:        "asha@example.com",
		PrimaryDosha: domain.DoshaPitta,
	})
	require.NoError(t, err)
	require.Equal(t, 1, created)

	_, err = svc.CreatePatient(context.Background(), claims, &patient.CreatePatientCommand{Name: "A"})
	require.Error(t, err)
	require.Equal(t, 1, created)
}

func TestCreatePatientAssignsOwnerFromClaims(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()

	p := e.createPatient(t, claims)
	require.Equal(t, claims.UserID, p.PractitionerID)
	require.Equal(t, patient.StatusActive, p.Status)
}

func TestGetPatientEnforcesOwnership(t *testing.T) {
	e := newEnv(t)
	owner := practitioner()
	p := e.createPatient(t, owner)

	_, err := e.patients.GetPatient(context.Background(), practitioner(), p.ID)
	require.ErrorIs(t, err, service.ErrForbidden)

	got, err := e.patients.GetPatient(context.Background(), owner, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)
}

func TestListPatientsReadsThroughCacheUntilMutation(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()
	key := cache.Key{Kind: domain.KindPatients, OwnerID: claims.UserID}

	list, err := e.patients.ListPatients(context.Background(), claims)
	require.NoError(t, err)
	require.Empty(t, list)

	_, cached := e.cache.Peek(key)
	require.True(t, cached)

	e.createPatient(t, claims)

	// Create invalidated the cached empty collection.
	_, cached = e.cache.Peek(key)
	require.False(t, cached)

	list, err = e.patients.ListPatients(context.Background(), claims)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestFailedUpdateLeavesCacheUntouched(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()
	e.createPatient(t, claims)

	_, err := e.patients.ListPatients(context.Background(), claims)
	require.NoError(t, err)

	key := cache.Key{Kind: domain.KindPatients, OwnerID: claims.UserID}
	_, cached := e.cache.Peek(key)
	require.True(t, cached)

	name := "New Name"
	_, err = e.patients.UpdatePatient(context.Background(), claims, uuid.New(), &patient.UpdatePatientCommand{Name: &name})
	require.ErrorIs(t, err, patient.ErrPatientNotFound)

	_, cached = e.cache.Peek(key)
	require.True(t, cached, "failed mutation must not invalidate cached collections")
}

func TestUpdatePatientForbiddenForOtherOwner(t *testing.T) {
	e := newEnv(t)
	owner := practitioner()
	p := e.createPatient(t, owner)

	name := "Hijacked"
	_, err := e.patients.UpdatePatient(context.Background(), practitioner(), p.ID, &patient.UpdatePatientCommand{Name: &name})
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestDeletePatientInvalidatesCache(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()
	p := e.createPatient(t, claims)

	_, err := e.patients.ListPatients(context.Background(), claims)
	require.NoError(t, err)

	require.NoError(t, e.patients.DeletePatient(context.Background(), claims, p.ID))

	list, err := e.patients.ListPatients(context.Background(), claims)
	require.NoError(t, err)
	require.Empty(t, list)
}

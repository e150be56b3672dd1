package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ayursutra/ayursutra/internal/cache"
	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/domain/patient"
	"github.com/ayursutra/ayursutra/internal/domain/therapy"
	"github.com/ayursutra/ayursutra/internal/service"
)

func TestCreateTherapyValidatesCommand(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()
	p := e.createPatient(t, claims)

	_, err := e.therapy.CreateTherapy(context.Background(), claims, &therapy.CreateTherapyCommand{
		PatientID:       p.ID,
		Name:            "X",
		Type:            "Acupuncture",
		ScheduledDate:   "01/03/2026",
		ScheduledTime:   "10am",
		DurationMinutes: 600,
	})

	var validErr *service.ValidationError
	require.ErrorAs(t, err, &validErr)
	require.Len(t, validErr.Fields, 5)
}

func TestCreateTherapyRequiresOwnedPatient(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()

	_, err := e.therapy.CreateTherapy(context.Background(), claims, &therapy.CreateTherapyCommand{
		PatientID:     uuid.New(),
		Name:          "Abhyanga",
		Type:          therapy.TypeAbhyanga,
		ScheduledDate: "2026-03-01",
		ScheduledTime: "10:00",
	})
	require.ErrorIs(t, err, patient.ErrPatientNotFound)

	other := practitioner()
	p := e.createPatient(t, other)
	_, err = e.therapy.CreateTherapy(context.Background(), claims, &therapy.CreateTherapyCommand{
		PatientID:     p.ID,
		Name:          "Abhyanga",
		Type:          therapy.TypeAbhyanga,
		ScheduledDate: "2026-03-01",
		ScheduledTime: "10:00",
	})
	require.ErrorIs(t, err, service.ErrForbidden)
}

func TestCreateTherapyAppliesDefaults(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()
	p := e.createPatient(t, claims)

	th := e.createTherapy(t, claims, p.ID)
	require.Equal(t, therapy.StatusScheduled, th.Status)
	require.Equal(t, therapy.DefaultDurationMinutes, th.DurationMinutes)
	require.Equal(t, claims.UserID, th.PractitionerID)
}

func TestTherapyMutationInvalidatesFeedbackCacheToo(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()
	p := e.createPatient(t, claims)
	th := e.createTherapy(t, claims, p.ID)

	_, err := e.therapy.ListTherapies(context.Background(), claims)
	require.NoError(t, err)
	_, err = e.feedback.ListFeedback(context.Background(), claims)
	require.NoError(t, err)

	therapyKey := cache.Key{Kind: domain.KindTherapies, OwnerID: claims.UserID}
	feedbackKey := cache.Key{Kind: domain.KindFeedback, OwnerID: claims.UserID}
	_, cached := e.cache.Peek(therapyKey)
	require.True(t, cached)
	_, cached = e.cache.Peek(feedbackKey)
	require.True(t, cached)

	status := therapy.StatusCompleted
	_, err = e.therapy.UpdateTherapy(context.Background(), claims, th.ID, &therapy.UpdateTherapyCommand{Status: &status})
	require.NoError(t, err)

	_, cached = e.cache.Peek(therapyKey)
	require.False(t, cached)
	_, cached = e.cache.Peek(feedbackKey)
	require.False(t, cached, "feedback collections are scoped through therapies and must refetch")
}

func TestListTherapiesByDateValidatesAndCachesPerDate(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()
	p := e.createPatient(t, claims)
	e.createTherapy(t, claims, p.ID)

	_, err := e.therapy.ListTherapiesByDate(context.Background(), claims, "not-a-date")
	var validErr *service.ValidationError
	require.ErrorAs(t, err, &validErr)

	day, err := e.therapy.ListTherapiesByDate(context.Background(), claims, "2026-03-01")
	require.NoError(t, err)
	require.Len(t, day, 1)

	empty, err := e.therapy.ListTherapiesByDate(context.Background(), claims, "2026-03-02")
	require.NoError(t, err)
	require.Empty(t, empty)

	dateKey := cache.Key{Kind: domain.KindTherapies, OwnerID: claims.UserID, Sub: "2026-03-01"}
	_, cached := e.cache.Peek(dateKey)
	require.True(t, cached)
}

func TestDeleteTherapyEnforcesOwnership(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()
	p := e.createPatient(t, claims)
	th := e.createTherapy(t, claims, p.ID)

	require.ErrorIs(t, e.therapy.DeleteTherapy(context.Background(), practitioner(), th.ID), service.ErrForbidden)
	require.NoError(t, e.therapy.DeleteTherapy(context.Background(), claims, th.ID))

	_, err := e.therapy.GetTherapy(context.Background(), claims, th.ID)
	require.ErrorIs(t, err, therapy.ErrTherapyNotFound)
}

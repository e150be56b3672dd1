package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ayursutra/ayursutra/internal/domain/feedback"
	"github.com/ayursutra/ayursutra/internal/service"
)

func TestCreateFeedbackValidatesRatingAndComment(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()
	p := e.createPatient(t, claims)
	th := e.createTherapy(t, claims, p.ID)

	_, err := e.feedback.CreateFeedback(context.Background(), claims, &feedback.CreateFeedbackCommand{
		TherapyID: th.ID,
		Rating:    6,
		Comment:   "too short",
	})

	var validErr *service.ValidationError
	require.ErrorAs(t, err, &validErr)
	require.Len(t, validErr.Fields, 2)
}

func TestCreateFeedbackDerivesPatientFromTherapy(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()
	p := e.createPatient(t, claims)
	th := e.createTherapy(t, claims, p.ID)

	f, err := e.feedback.CreateFeedback(context.Background(), claims, &feedback.CreateFeedbackCommand{
		TherapyID: th.ID,
		Rating:    5,
		Comment:   "Wonderful session, very relaxing.",
	})
	require.NoError(t, err)
	require.Equal(t, p.ID, f.PatientID)
}

func TestCreateFeedbackRejectsMismatchedPatient(t *testing.T) {
	e := newEnv(t)
	claims := practitioner()
	p := e.createPatient(t, claims)
	th := e.createTherapy(t, claims, p.ID)

	_, err := e.feedback.CreateFeedback(context.Background(), claims, &feedback.CreateFeedbackCommand{
		TherapyID: th.ID,
		PatientID: uuid.New(),
		Rating:    4,
		Comment:   "Good session overall, thanks.",
	})

	var validErr *service.ValidationError
	require.ErrorAs(t, err, &validErr)
}

func TestFeedbackOwnershipRunsThroughTherapyRelation(t *testing.T) {
	e := newEnv(t)
	owner := practitioner()
	p := e.createPatient(t, owner)
	th := e.createTherapy(t, owner, p.ID)

	f, err := e.feedback.CreateFeedback(context.Background(), owner, &feedback.CreateFeedbackCommand{
		TherapyID: th.ID,
		Rating:    3,
		Comment:   "Session was fine but room was cold.",
	})
	require.NoError(t, err)

	intruder := practitioner()
	_, err = e.feedback.GetFeedback(context.Background(), intruder, f.ID)
	require.ErrorIs(t, err, service.ErrForbidden)

	rating := 4
	_, err = e.feedback.UpdateFeedback(context.Background(), intruder, f.ID, &feedback.UpdateFeedbackCommand{Rating: &rating})
	require.ErrorIs(t, err, service.ErrForbidden)

	require.ErrorIs(t, e.feedback.DeleteFeedback(context.Background(), intruder, f.ID), service.ErrForbidden)

	updated, err := e.feedback.UpdateFeedback(context.Background(), owner, f.ID, &feedback.UpdateFeedbackCommand{Rating: &rating})
	require.NoError(t, err)
	require.Equal(t, 4, updated.Rating)
}

func TestListFeedbackScopedToPractitioner(t *testing.T) {
	e := newEnv(t)
	ownerA := practitioner()
	ownerB := practitioner()

	pa := e.createPatient(t, ownerA)
	ta := e.createTherapy(t, ownerA, pa.ID)
	_, err := e.feedback.CreateFeedback(context.Background(), ownerA, &feedback.CreateFeedbackCommand{
		TherapyID: ta.ID,
		Rating:    5,
		Comment:   "Excellent, will book again soon.",
	})
	require.NoError(t, err)

	pb := e.createPatient(t, ownerB)
	tb := e.createTherapy(t, ownerB, pb.ID)
	_, err = e.feedback.CreateFeedback(context.Background(), ownerB, &feedback.CreateFeedbackCommand{
		TherapyID: tb.ID,
		Rating:    2,
		Comment:   "Not what I expected at all.",
	})
	require.NoError(t, err)

	listA, err := e.feedback.ListFeedback(context.Background(), ownerA)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	require.Equal(t, 5, listA[0].Rating)

	listB, err := e.feedback.ListFeedback(context.Background(), ownerB)
	require.NoError(t, err)
	require.Len(t, listB, 1)
	require.Equal(t, 2, listB[0].Rating)
}

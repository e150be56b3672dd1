package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/domain/feedback"
	"github.com/ayursutra/ayursutra/internal/domain/patient"
	"github.com/ayursutra/ayursutra/internal/domain/profile"
	"github.com/ayursutra/ayursutra/internal/domain/therapy"
)

// Seed populates the store with a demo practitioner and sample clinical
// data for local development. passwordHash is the bcrypt hash to assign to
// the demo account.
func (s *Store) Seed(ctx context.Context, passwordHash string) error {
	user := &domain.User{
		Email:        "demo@ayursutra.io",
		PasswordHash: passwordHash,
	}
	if err := s.Users().Create(ctx, user); err != nil {
		return fmt.Errorf("seeding demo user: %w", err)
	}

	if err := s.Profiles().Create(ctx, &profile.Profile{
		UserID:           user.ID,
		ClinicName:       "AyurSutra Demo Clinic",
		PractitionerName: "Dr. Demo Practitioner",
		Email:            user.Email,
		Specialization:   "Panchakarma",
		ExperienceYears:  10,
	}); err != nil {
		return fmt.Errorf("seeding demo profile: %w", err)
	}

	pitta := domain.DoshaPitta
	kapha := domain.DoshaKapha
	male := domain.GenderMale
	female := domain.GenderFemale
	age35, age28 := 35, 28

	p1 := &patient.Patient{
		Name:           "John Smith",
		Email:          "john@example.com",
		Phone:          "+1 555-0123",
		PrimaryDosha:   domain.DoshaVata,
		SecondaryDosha: &pitta,
		Age:            &age35,
		Gender:         &male,
		Address:        "123 Wellness St, Health City",
		MedicalHistory: "Hypertension, occasional migraines",
		Allergies:      "None known",
		PractitionerID: user.ID,
	}
	p2 := &patient.Patient{
		Name:           "Sarah Johnson",
		Email:          "sarah@example.com",
		Phone:          "+1 555-0456",
		PrimaryDosha:   domain.DoshaPitta,
		SecondaryDosha: &kapha,
		Age:            &age28,
		Gender:         &female,
		Address:        "456 Balance Ave, Harmony City",
		MedicalHistory: "Digestive issues, stress-related symptoms",
		Allergies:      "Dairy",
		PractitionerID: user.ID,
	}
	for _, p := range []*patient.Patient{p1, p2} {
		if err := s.Patients().Create(ctx, p); err != nil {
			return fmt.Errorf("seeding demo patient: %w", err)
		}
	}

	t1 := &therapy.Therapy{
		PatientID:     p1.ID,
		Name:          "Abhyanga Massage",
		Type:          therapy.TypeAbhyanga,
		ScheduledDate: time.Now().Format("2006-01-02"),
		ScheduledTime: "10:00",
		Precautions: []string{
			"Avoid cold water for 2 hours after",
			"Rest for 30 minutes after therapy",
		},
		Notes:          "Focus on Vata-pacifying techniques",
		PractitionerID: user.ID,
	}
	if err := s.Therapies().Create(ctx, t1); err != nil {
		return fmt.Errorf("seeding demo therapy: %w", err)
	}

	if err := s.Feedback().Create(ctx, &feedback.Feedback{
		TherapyID: t1.ID,
		PatientID: p1.ID,
		Rating:    5,
		Comment:   "Excellent therapy session. Felt very relaxed and rejuvenated.",
	}); err != nil {
		return fmt.Errorf("seeding demo feedback: %w", err)
	}

	return nil
}

// DemoUserID returns the seeded demo account id, if present.
func (s *Store) DemoUserID() (uuid.UUID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id, u := range s.users {
		if u.Email == "demo@ayursutra.io" {
			return id, true
		}
	}
	return uuid.Nil, false
}

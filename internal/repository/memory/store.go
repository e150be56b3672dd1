// Package memory provides an in-memory implementation of every repository
// interface. It backs local development and tests; selection between this
// store and Postgres happens once at startup via configuration.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayursutra/ayursutra/internal/domain"
	"github.com/ayursutra/ayursutra/internal/domain/feedback"
	"github.com/ayursutra/ayursutra/internal/domain/patient"
	"github.com/ayursutra/ayursutra/internal/domain/profile"
	"github.com/ayursutra/ayursutra/internal/domain/therapy"
)

type Store struct {
	mu sync.RWMutex

	users     map[uuid.UUID]*domain.User
	patients  map[uuid.UUID]*patient.Patient
	therapies map[uuid.UUID]*therapy.Therapy
	feedback  map[uuid.UUID]*feedback.Feedback
	profiles  map[uuid.UUID]*profile.Profile // keyed by user ID

	now func() time.Time
}

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		users:     make(map[uuid.UUID]*domain.User),
		patients:  make(map[uuid.UUID]*patient.Patient),
		therapies: make(map[uuid.UUID]*therapy.Therapy),
		feedback:  make(map[uuid.UUID]*feedback.Feedback),
		profiles:  make(map[uuid.UUID]*profile.Profile),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Patients() patient.Repository   { return &patientRepo{s} }
func (s *Store) Therapies() therapy.Repository  { return &therapyRepo{s} }
func (s *Store) Feedback() feedback.Repository  { return &feedbackRepo{s} }
func (s *Store) Profiles() profile.Repository   { return &profileRepo{s} }
func (s *Store) Users() *UserRepository         { return &UserRepository{s} }

// touched returns an updated_at timestamp guaranteed to be strictly after
// the previous one, even on coarse clocks.
func (s *Store) touched(prev time.Time) time.Time {
	ts := s.now()
	if !ts.After(prev) {
		ts = prev.Add(time.Nanosecond)
	}
	return ts
}

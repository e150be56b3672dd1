package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Dosha is one of the three Ayurvedic constitutional categories.
type Dosha string

const (
	DoshaVata  Dosha = "Vata"
	DoshaPitta Dosha = "Pitta"
	DoshaKapha Dosha = "Kapha"
)

func (d Dosha) IsValid() bool {
	switch d {
	case DoshaVata, DoshaPitta, DoshaKapha:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// EntityKind names a cacheable, observable collection. Used as the leading
// component of cache keys and as the channel selector for change-feed
// subscriptions.
type EntityKind string

const (
	KindPatients  EntityKind = "patients"
	KindTherapies EntityKind = "therapies"
	KindFeedback  EntityKind = "feedback"
	KindProfiles  EntityKind = "profiles"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
)

// User is a practitioner account. All clinical data is scoped to the owning
// user; there is no cross-practitioner visibility.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Email        string `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
}

func (User) TableName() string {
	return "auth.users"
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	TokenType    string    `json:"token_type"` // Always "Bearer"
}

// Claims is the authenticated identity threaded through handlers into
// service calls. There is no module-level current-user state.
type Claims struct {
	UserID uuid.UUID `json:"sub"`
	Email  string    `json:"email"`
}

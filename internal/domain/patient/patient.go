package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/ayursutra/ayursutra/internal/domain"
)

// Status represents the lifecycle state of a patient record.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	}
	return false
}

type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Name  string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Email string `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Phone string `gorm:"column:phone;type:varchar(20)" json:"phone,omitempty"`

	// PrimaryDosha is required. SecondaryDosha is conventionally different
	// from the primary but equal values are accepted.
	PrimaryDosha   domain.Dosha  `gorm:"column:primary_dosha;type:varchar(10);not null;index" json:"primary_dosha"`
	SecondaryDosha *domain.Dosha `gorm:"column:secondary_dosha;type:varchar(10)" json:"secondary_dosha,omitempty"`

	Age    *int           `gorm:"column:age" json:"age,omitempty"`
	Gender *domain.Gender `gorm:"column:gender;type:varchar(10)" json:"gender,omitempty"`

	Address        string `gorm:"column:address;type:text" json:"address,omitempty"`
	MedicalHistory string `gorm:"column:medical_history;type:text" json:"medical_history,omitempty"`
	Allergies      string `gorm:"column:allergies;type:text" json:"allergies,omitempty"`

	Status Status `gorm:"column:status;type:varchar(20);default:'active';index" json:"status"`

	PractitionerID uuid.UUID `gorm:"column:practitioner_id;type:uuid;not null;index" json:"practitioner_id"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

func (p *Patient) IsActive() bool {
	return p.Status == StatusActive
}

type CreatePatientCommand struct {
	Name           string
	Email          string
	Phone          string
	PrimaryDosha   domain.Dosha
	SecondaryDosha *domain.Dosha
	Age            *int
	Gender         *domain.Gender
	Address        string
	MedicalHistory string
	Allergies      string
	Status         Status // defaults to active when empty
	PractitionerID uuid.UUID
}

// UpdatePatientCommand applies partial updates; nil fields are left
// untouched.
type UpdatePatientCommand struct {
	Name           *string
	Email          *string
	Phone          *string
	PrimaryDosha   *domain.Dosha
	SecondaryDosha *domain.Dosha
	Age            *int
	Gender         *domain.Gender
	Address        *string
	MedicalHistory *string
	Allergies      *string
	Status         *Status
}

package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds clinic and practitioner identity for one account. Created
// at sign-up, updated via settings, never deleted through the modeled
// flows.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"user_id"`

	ClinicName       string `gorm:"column:clinic_name;type:varchar(255);not null" json:"clinic_name"`
	PractitionerName string `gorm:"column:practitioner_name;type:varchar(255);not null" json:"practitioner_name"`
	Email            string `gorm:"column:email;type:varchar(255);not null" json:"email"`
	Phone            string `gorm:"column:phone;type:varchar(20)" json:"phone,omitempty"`
	Address          string `gorm:"column:address;type:text" json:"address,omitempty"`
	Specialization   string `gorm:"column:specialization;type:varchar(255)" json:"specialization,omitempty"`
	ExperienceYears  int    `gorm:"column:experience_years;default:0" json:"experience_years"`
}

func (Profile) TableName() string {
	return "clinical.profiles"
}

type UpdateProfileCommand struct {
	ClinicName       *string
	PractitionerName *string
	Email            *string
	Phone            *string
	Address          *string
	Specialization   *string
	ExperienceYears  *int
}

package therapy

import (
	"time"

	"github.com/google/uuid"
)

type TherapyType string

const (
	TypePanchakarma   TherapyType = "Panchakarma"
	TypeAbhyanga      TherapyType = "Abhyanga"
	TypeShirodhara    TherapyType = "Shirodhara"
	TypeNasya         TherapyType = "Nasya"
	TypeBasti         TherapyType = "Basti"
	TypeVirechana     TherapyType = "Virechana"
	TypeRaktamokshana TherapyType = "Raktamokshana"
	TypeOther         TherapyType = "Other"
)

func (t TherapyType) IsValid() bool {
	switch t {
	case TypePanchakarma, TypeAbhyanga, TypeShirodhara, TypeNasya,
		TypeBasti, TypeVirechana, TypeRaktamokshana, TypeOther:
		return true
	}
	return false
}

// Status values. Transitions are deliberately not enforced: any status may
// follow any other. Tightening this to a transition table is an open
// product question.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

const (
	MinDurationMinutes     = 15
	MaxDurationMinutes     = 480
	DefaultDurationMinutes = 60
)

type Therapy struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`

	Name string      `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Type TherapyType `gorm:"column:type;type:varchar(30);not null;index" json:"type"`

	// Scheduling keeps the date ("2006-01-02") and time ("15:04") as
	// separate fields rather than one timestamp, matching the booking UI.
	ScheduledDate   string `gorm:"column:scheduled_date;type:varchar(10);not null;index" json:"scheduled_date"`
	ScheduledTime   string `gorm:"column:scheduled_time;type:varchar(5);not null" json:"scheduled_time"`
	DurationMinutes int    `gorm:"column:duration_minutes;not null;default:60" json:"duration_minutes"`

	// Precautions are plain strings; entries produced by the advisory
	// service carry no link back to the generating prompt.
	Precautions []string `gorm:"column:precautions;serializer:json" json:"precautions,omitempty"`
	Notes       string   `gorm:"column:notes;type:text" json:"notes,omitempty"`

	Status Status `gorm:"column:status;type:varchar(20);not null;default:'scheduled';index" json:"status"`

	PractitionerID uuid.UUID `gorm:"column:practitioner_id;type:uuid;not null;index" json:"practitioner_id"`
}

func (Therapy) TableName() string {
	return "clinical.therapies"
}

type CreateTherapyCommand struct {
	PatientID       uuid.UUID
	Name            string
	Type            TherapyType
	ScheduledDate   string
	ScheduledTime   string
	DurationMinutes int // defaults to DefaultDurationMinutes when zero
	Precautions     []string
	Notes           string
	Status          Status // defaults to scheduled when empty
	PractitionerID  uuid.UUID
}

type UpdateTherapyCommand struct {
	Name            *string
	Type            *TherapyType
	ScheduledDate   *string
	ScheduledTime   *string
	DurationMinutes *int
	Precautions     *[]string
	Notes           *string
	Status          *Status
}

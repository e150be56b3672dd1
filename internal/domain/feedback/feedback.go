package feedback

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MinCommentLength = 10
)

type Feedback struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	TherapyID uuid.UUID `gorm:"column:therapy_id;type:uuid;not null;index" json:"therapy_id"`
	// PatientID is stored redundantly alongside the therapy relation so
	// feedback remains queryable per patient without a join.
	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index" json:"patient_id"`

	Rating  int    `gorm:"column:rating;not null" json:"rating"`
	Comment string `gorm:"column:comment;type:text;not null" json:"comment"`

	WasFlagged       bool `gorm:"column:was_flagged;default:false" json:"was_flagged"`
	FollowUpRequired bool `gorm:"column:follow_up_required;default:false" json:"follow_up_required"`
}

func (Feedback) TableName() string {
	return "clinical.feedback"
}

type CreateFeedbackCommand struct {
	TherapyID        uuid.UUID
	PatientID        uuid.UUID
	Rating           int
	Comment          string
	WasFlagged       bool
	FollowUpRequired bool
}

type UpdateFeedbackCommand struct {
	Rating           *int
	Comment          *string
	WasFlagged       *bool
	FollowUpRequired *bool
}

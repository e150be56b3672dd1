package feedback

import "errors"

var (
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrCommentTooShort  = errors.New("comment must be at least 10 characters")
)

package therapy

import "errors"

var (
	ErrTherapyNotFound    = errors.New("therapy not found")
	ErrInvalidTherapyType = errors.New("invalid therapy type")
	ErrInvalidStatus      = errors.New("invalid therapy status")
	ErrInvalidDuration    = errors.New("therapy duration must be between 15 and 480 minutes")
)

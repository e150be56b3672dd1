package patient

import "errors"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrInvalidDosha    = errors.New("invalid dosha value")
	ErrInvalidGender   = errors.New("invalid gender value")
	ErrInvalidStatus   = errors.New("invalid patient status")
)

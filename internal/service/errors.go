package service

import (
	"errors"
	"strings"
)

var ErrForbidden = errors.New("forbidden: resource belongs to another practitioner")

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

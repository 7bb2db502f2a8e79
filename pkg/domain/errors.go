package domain

import (
	"errors"
	"fmt"
)

// common errors
var (
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrNoVersion            = errors.New("no version header found")
	ErrAnalysisUnavailable  = errors.New("analysis unavailable")
	ErrSynthesisUnavailable = errors.New("speech synthesis unavailable")
	ErrCheckInProgress      = errors.New("check already in progress")
)

// ValidationError reports invalid input, returned before any store mutation
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

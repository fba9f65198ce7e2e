package service

import (
	"errors"
	"fmt"

	"legalconsult-backend/repository"
)

var (
	ErrInvalidRequest        = errors.New("invalid consultation request")
	ErrGenerationFailed      = errors.New("failed to generate consultation answer")
	ErrEnhancementFailed     = errors.New("failed to enhance consultation response")
	ErrRecorderNotConfigured = errors.New("consultation history is not configured")
	ErrConsultationNotFound  = repository.ErrConsultationNotFound
)

// ValidationError describes the first request constraint that was violated
type ValidationError struct {
	Field      string
	Constraint string
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrInvalidRequest) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

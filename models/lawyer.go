package models

import (
	"time"

	"github.com/google/uuid"
)

// Lawyer represents a lawyer account
type Lawyer struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize password hash
	Name         string    `json:"name"`
	FirmID       *string   `json:"firm_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LawyerPreferences represents a lawyer's personalization record
type LawyerPreferences struct {
	UserID                   string    `json:"user_id"`
	ResponseStyle            string    `json:"response_style"` // "formal", "concise", ...
	DetailLevel              string    `json:"detail_level"`   // "brief", "standard", "comprehensive"
	Specializations          []string  `json:"specializations"`
	RiskTolerance            string    `json:"risk_tolerance"` // "low", "medium", "high"
	ClientCommunicationStyle string    `json:"client_communication_style"`
	IncludeExamples          bool      `json:"include_examples"`
	IncludeCitations         bool      `json:"include_citations"`
	UpdatedAt                time.Time `json:"updated_at"`
}

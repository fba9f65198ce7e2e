package models

import "time"

// FirmContext represents firm-specific knowledge layered into the prompt
type FirmContext struct {
	FirmID              string    `json:"firm_id"`
	Specializations     []string  `json:"specializations"`
	SuccessPatterns     string    `json:"success_patterns"`
	PreferredApproaches string    `json:"preferred_approaches"`
	DerivedAt           time.Time `json:"derived_at"`
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Value implements driver.Valuer for JSONB
func (l LegalReferences) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB
func (l *LegalReferences) Scan(value interface{}) error {
	bytes, ok := jsonbBytes(value)
	if !ok {
		*l = make(LegalReferences, 0)
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Issues represents validation issues stored alongside a consultation
type Issues []string

// Value implements driver.Valuer for JSONB
func (i Issues) Value() (driver.Value, error) {
	if i == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(i))
}

// Scan implements sql.Scanner for JSONB
func (i *Issues) Scan(value interface{}) error {
	bytes, ok := jsonbBytes(value)
	if !ok {
		*i = make(Issues, 0)
		return nil
	}
	return json.Unmarshal(bytes, (*[]string)(i))
}

// jsonbBytes handles the different types pgx may return for JSONB.
// It reports false for NULL, empty or unsupported values.
func jsonbBytes(value interface{}) ([]byte, bool) {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil, false
	}
	return bytes, len(bytes) > 0
}

// ConsultationRecord represents a persisted consultation
type ConsultationRecord struct {
	ID                 uuid.UUID       `json:"id"`
	FirmID             *string         `json:"firm_id,omitempty"`
	UserID             *string         `json:"user_id,omitempty"`
	QueryText          string          `json:"query"`
	CaseType           CaseType        `json:"case_type,omitempty"`
	Language           Language        `json:"language"`
	Answer             string          `json:"answer"`
	Confidence         float64         `json:"confidence"`
	SuccessProbability float64         `json:"success_probability"`
	References         LegalReferences `json:"references"`
	ValidationIssues   Issues          `json:"validation_issues"`
	CreatedAt          time.Time       `json:"created_at"`
}

// NewConsultationRecord builds the record stored for a finished consultation
func NewConsultationRecord(resp *ConsultationResponse, query, firmID, userID string) *ConsultationRecord {
	rec := &ConsultationRecord{
		QueryText:          query,
		CaseType:           resp.CaseType,
		Language:           resp.Language,
		Answer:             resp.Answer,
		Confidence:         resp.Confidence,
		SuccessProbability: resp.SuccessProbability,
		References:         resp.References,
		ValidationIssues:   Issues(resp.Validation.Issues),
		CreatedAt:          resp.LastUpdated,
	}
	if id, err := uuid.Parse(resp.ID); err == nil {
		rec.ID = id
	} else {
		rec.ID = uuid.New()
	}
	if firmID != "" {
		rec.FirmID = &firmID
	}
	if userID != "" {
		rec.UserID = &userID
	}
	return rec
}

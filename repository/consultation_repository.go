package repository

import (
	"context"
	"errors"
	"fmt"

	"legalconsult-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrConsultationNotFound is returned when no consultation has the given id
var ErrConsultationNotFound = errors.New("consultation not found")

// CaseTypeCount is the number of consultations a firm has held for one case type
type CaseTypeCount struct {
	CaseType models.CaseType
	Count    int
}

// ConsultationRepository handles database operations for consultation records
type ConsultationRepository struct {
	db *pgxpool.Pool
}

// NewConsultationRepository creates a new consultation repository
func NewConsultationRepository(db *pgxpool.Pool) *ConsultationRepository {
	return &ConsultationRepository{db: db}
}

// Create stores a consultation record
func (r *ConsultationRepository) Create(ctx context.Context, rec *models.ConsultationRecord) error {
	query := `
		INSERT INTO consultations (
			id, firm_id, user_id, query_text, case_type, language, answer,
			confidence, success_probability, cited_references, validation_issues,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Exec(
		ctx, query,
		rec.ID,
		rec.FirmID,
		rec.UserID,
		rec.QueryText,
		string(rec.CaseType),
		string(rec.Language),
		rec.Answer,
		rec.Confidence,
		rec.SuccessProbability,
		rec.References,
		rec.ValidationIssues,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert consultation: %w", err)
	}
	return nil
}

// GetByID retrieves a consultation record by ID
func (r *ConsultationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ConsultationRecord, error) {
	rec := &models.ConsultationRecord{}
	var caseType, language string
	query := `
		SELECT id, firm_id, user_id, query_text, case_type, language, answer,
			confidence, success_probability, cited_references, validation_issues,
			created_at
		FROM consultations
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.FirmID,
		&rec.UserID,
		&rec.QueryText,
		&caseType,
		&language,
		&rec.Answer,
		&rec.Confidence,
		&rec.SuccessProbability,
		&rec.References,
		&rec.ValidationIssues,
		&rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrConsultationNotFound
		}
		return nil, fmt.Errorf("failed to get consultation: %w", err)
	}
	rec.CaseType = models.CaseType(caseType)
	rec.Language = models.Language(language)

	// Ensure slices are never nil
	if rec.References == nil {
		rec.References = make(models.LegalReferences, 0)
	}
	if rec.ValidationIssues == nil {
		rec.ValidationIssues = make(models.Issues, 0)
	}

	return rec, nil
}

// CaseTypeCountsByFirm returns how often a firm consulted on each case type,
// most frequent first. Consultations without a case type are ignored.
func (r *ConsultationRepository) CaseTypeCountsByFirm(ctx context.Context, firmID string) ([]CaseTypeCount, error) {
	query := `
		SELECT case_type, COUNT(*)
		FROM consultations
		WHERE firm_id = $1 AND case_type <> ''
		GROUP BY case_type
		ORDER BY COUNT(*) DESC, case_type`

	rows, err := r.db.Query(ctx, query, firmID)
	if err != nil {
		return nil, fmt.Errorf("failed to query case type counts: %w", err)
	}
	defer rows.Close()

	var counts []CaseTypeCount
	for rows.Next() {
		var caseType string
		var count int
		if err := rows.Scan(&caseType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan case type count: %w", err)
		}
		counts = append(counts, CaseTypeCount{CaseType: models.CaseType(caseType), Count: count})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating case type counts: %w", err)
	}

	return counts, nil
}

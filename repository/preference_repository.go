package repository

import (
	"context"
	"errors"
	"fmt"

	"legalconsult-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPreferencesNotFound is returned when a lawyer has no stored preferences
var ErrPreferencesNotFound = errors.New("lawyer preferences not found")

// PreferenceRepository handles database operations for lawyer preferences
type PreferenceRepository struct {
	db *pgxpool.Pool
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetByUserID retrieves the preferences stored for a lawyer
func (r *PreferenceRepository) GetByUserID(ctx context.Context, userID string) (*models.LawyerPreferences, error) {
	prefs := &models.LawyerPreferences{}
	query := `
		SELECT user_id, response_style, detail_level, specializations,
			risk_tolerance, client_communication_style,
			include_examples, include_citations, updated_at
		FROM lawyer_preferences
		WHERE user_id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&prefs.UserID,
		&prefs.ResponseStyle,
		&prefs.DetailLevel,
		&prefs.Specializations,
		&prefs.RiskTolerance,
		&prefs.ClientCommunicationStyle,
		&prefs.IncludeExamples,
		&prefs.IncludeCitations,
		&prefs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("failed to get lawyer preferences: %w", err)
	}

	return prefs, nil
}

// Upsert creates or replaces a lawyer's preferences
func (r *PreferenceRepository) Upsert(ctx context.Context, prefs *models.LawyerPreferences) error {
	query := `
		INSERT INTO lawyer_preferences (
			user_id, response_style, detail_level, specializations,
			risk_tolerance, client_communication_style,
			include_examples, include_citations
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			response_style = EXCLUDED.response_style,
			detail_level = EXCLUDED.detail_level,
			specializations = EXCLUDED.specializations,
			risk_tolerance = EXCLUDED.risk_tolerance,
			client_communication_style = EXCLUDED.client_communication_style,
			include_examples = EXCLUDED.include_examples,
			include_citations = EXCLUDED.include_citations,
			updated_at = NOW()
		RETURNING updated_at`

	return r.db.QueryRow(
		ctx, query,
		prefs.UserID,
		prefs.ResponseStyle,
		prefs.DetailLevel,
		prefs.Specializations,
		prefs.RiskTolerance,
		prefs.ClientCommunicationStyle,
		prefs.IncludeExamples,
		prefs.IncludeCitations,
	).Scan(&prefs.UpdatedAt)
}

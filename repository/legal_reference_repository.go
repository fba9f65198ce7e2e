package repository

import (
	"context"
	"fmt"

	"legalconsult-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LegalReferenceRepository handles database operations for legal reference entries
type LegalReferenceRepository struct {
	db *pgxpool.Pool
}

// NewLegalReferenceRepository creates a new legal reference repository
func NewLegalReferenceRepository(db *pgxpool.Pool) *LegalReferenceRepository {
	return &LegalReferenceRepository{db: db}
}

// ListAll loads every entry, ordered by category then id
func (r *LegalReferenceRepository) ListAll(ctx context.Context) ([]models.LegalReferenceEntry, error) {
	query := `
		SELECT id, title, law_name, article_label, body_text, category, last_updated
		FROM legal_references
		ORDER BY category, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query legal references: %w", err)
	}
	defer rows.Close()

	var entries []models.LegalReferenceEntry
	for rows.Next() {
		var e models.LegalReferenceEntry
		err := rows.Scan(
			&e.ID,
			&e.Title,
			&e.LawName,
			&e.ArticleLabel,
			&e.BodyText,
			&e.Category,
			&e.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan legal reference: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating legal references: %w", err)
	}

	return entries, nil
}

// ReplaceAll swaps the table contents for entries in a single transaction
func (r *LegalReferenceRepository) ReplaceAll(ctx context.Context, entries []models.LegalReferenceEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	if _, err := tx.Exec(ctx, "DELETE FROM legal_references"); err != nil {
		return fmt.Errorf("failed to clear legal references: %w", err)
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(`
			INSERT INTO legal_references (
				id, title, law_name, article_label, body_text, category, last_updated
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			e.ID, e.Title, e.LawName, e.ArticleLabel, e.BodyText, e.Category, e.LastUpdated,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert legal references: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit legal references: %w", err)
	}
	return nil
}

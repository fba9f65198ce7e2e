package repository

import (
	"context"
	"errors"
	"fmt"

	"legalconsult-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrLawyerNotFound is returned when no lawyer matches the lookup
var ErrLawyerNotFound = errors.New("lawyer not found")

// LawyerRepository handles database operations for lawyer accounts
type LawyerRepository struct {
	db *pgxpool.Pool
}

// NewLawyerRepository creates a new lawyer repository
func NewLawyerRepository(db *pgxpool.Pool) *LawyerRepository {
	return &LawyerRepository{db: db}
}

// Create inserts a lawyer and fills in the generated id and timestamps
func (r *LawyerRepository) Create(ctx context.Context, l *models.Lawyer) error {
	query := `
		INSERT INTO lawyers (email, password_hash, name, firm_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, l.Email, l.PasswordHash, l.Name, l.FirmID).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create lawyer: %w", err)
	}
	return nil
}

// GetByEmail retrieves a lawyer by email
func (r *LawyerRepository) GetByEmail(ctx context.Context, email string) (*models.Lawyer, error) {
	l := &models.Lawyer{}
	query := `
		SELECT id, email, password_hash, name, firm_id, created_at, updated_at
		FROM lawyers
		WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&l.ID,
		&l.Email,
		&l.PasswordHash,
		&l.Name,
		&l.FirmID,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLawyerNotFound
		}
		return nil, fmt.Errorf("failed to get lawyer: %w", err)
	}
	return l, nil
}

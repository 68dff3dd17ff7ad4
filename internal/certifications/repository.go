package certifications

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a certification does not exist or belongs to
// another user.
var ErrNotFound = fmt.Errorf("certification not found")

// Repository defines the interface for certification data access
type Repository interface {
	Create(ctx context.Context, cert *Certification) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Certification, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Certification, error)
	Update(ctx context.Context, cert *Certification) error
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// SumActivityValues returns the total CPE value logged against a
	// certification.
	SumActivityValues(ctx context.Context, certificationID uuid.UUID) (float64, error)
}

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, cert *Certification) error {
	query := `
		INSERT INTO certifications (id, user_id, name, authority, required_cpes, renewal_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		cert.ID, cert.UserID, cert.Name, cert.Authority,
		cert.RequiredCPEs, cert.RenewalDate, cert.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create certification: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Certification, error) {
	query := `
		SELECT id, user_id, name, authority, required_cpes, renewal_date, created_at
		FROM certifications
		WHERE id = $1 AND user_id = $2
	`

	var cert Certification
	if err := r.db.GetContext(ctx, &cert, query, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get certification: %w", err)
	}

	return &cert, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*Certification, error) {
	query := `
		SELECT id, user_id, name, authority, required_cpes, renewal_date, created_at
		FROM certifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var certs []*Certification
	if err := r.db.SelectContext(ctx, &certs, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list certifications: %w", err)
	}

	return certs, nil
}

func (r *PostgresRepository) Update(ctx context.Context, cert *Certification) error {
	query := `
		UPDATE certifications SET
			name = $3, authority = $4, required_cpes = $5, renewal_date = $6
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.ExecContext(ctx, query,
		cert.ID, cert.UserID, cert.Name, cert.Authority,
		cert.RequiredCPEs, cert.RenewalDate)
	if err != nil {
		return fmt.Errorf("failed to update certification: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM certifications WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete certification: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) SumActivityValues(ctx context.Context, certificationID uuid.UUID) (float64, error) {
	query := `SELECT COALESCE(SUM(cpe_value), 0) FROM cpe_activities WHERE certification_id = $1`

	var total float64
	if err := r.db.GetContext(ctx, &total, query, certificationID); err != nil {
		return 0, fmt.Errorf("failed to sum activity values: %w", err)
	}

	return total, nil
}

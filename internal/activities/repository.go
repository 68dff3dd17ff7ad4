package activities

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when an activity does not exist or belongs to
// another user.
var ErrNotFound = fmt.Errorf("activity not found")

// Repository defines the interface for activity data access
type Repository interface {
	Create(ctx context.Context, activity *Activity) error
	GetByID(ctx context.Context, id, userID uuid.UUID) (*Activity, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Activity, int, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, activity *Activity) error {
	query := `
		INSERT INTO cpe_activities (
			id, user_id, certification_id, activity_type, description,
			cpe_value, activity_date, proof_file, original_filename,
			verified, suggested_cpe_value, verification_method, verification_notes,
			created_at
		) VALUES (
			:id, :user_id, :certification_id, :activity_type, :description,
			:cpe_value, :activity_date, :proof_file, :original_filename,
			:verified, :suggested_cpe_value, :verification_method, :verification_notes,
			:created_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, activity); err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id, userID uuid.UUID) (*Activity, error) {
	query := `
		SELECT * FROM cpe_activities
		WHERE id = $1 AND user_id = $2
	`

	var activity Activity
	if err := r.db.GetContext(ctx, &activity, query, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return &activity, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Activity, int, error) {
	where := `WHERE user_id = $1`
	args := []interface{}{userID}

	if filter.CertificationID != nil {
		where += ` AND certification_id = $2`
		args = append(args, *filter.CertificationID)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM cpe_activities ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT * FROM cpe_activities
		%s
		ORDER BY activity_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	var list []*Activity
	if err := r.db.SelectContext(ctx, &list, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list activities: %w", err)
	}

	return list, total, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM cpe_activities WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

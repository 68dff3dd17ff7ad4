package auth

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = fmt.Errorf("user not found")

// Repository defines the interface for user data access
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.getUser(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return r.getUser(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE username = $1`, username)
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.getUser(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`, email)
}

func (r *PostgresRepository) getUser(ctx context.Context, query string, arg interface{}) (*User, error) {
	var user User
	if err := r.db.GetContext(ctx, &user, query, arg); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

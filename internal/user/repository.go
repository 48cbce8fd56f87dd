package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles user data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new user repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, email, fullName, hashedPassword string) (*User, error) {
	query := `
		INSERT INTO users (id, email, full_name, hashed_password)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, full_name, hashed_password, created_at, updated_at
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, uuid.New(), email, fullName, hashedPassword).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT id, email, full_name, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetByEmail retrieves a user by email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, full_name, hashed_password, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// Update modifies the user's profile fields
func (r *Repository) Update(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*User, error) {
	query := `
		UPDATE users
		SET email = COALESCE($2, email),
			full_name = COALESCE($3, full_name),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, email, full_name, hashed_password, created_at, updated_at
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id, req.Email, req.FullName).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.HashedPassword,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// UpdatePassword replaces the stored password hash
func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	query := `
		UPDATE users
		SET hashed_password = $2, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := r.db.ExecContext(ctx, query, id, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

package group

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles group data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new group into the database
func (r *Repository) Create(ctx context.Context, ownerID uuid.UUID, req *CreateGroupRequest) (*Group, error) {
	query := `
		INSERT INTO groups (id, owner_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, name, created_at, updated_at
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, uuid.New(), ownerID, req.Name).Scan(
		&group.ID,
		&group.OwnerID,
		&group.Name,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return group, nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Group, error) {
	query := `
		SELECT id, owner_id, name, created_at, updated_at
		FROM groups
		WHERE id = $1
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.OwnerID,
		&group.Name,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// ListByOwner retrieves all groups owned by a user, with aggregate stats
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*GroupWithStats, error) {
	query := `
		SELECT g.id, g.owner_id, g.name, g.created_at, g.updated_at,
			(SELECT COUNT(*) FROM participants p WHERE p.group_id = g.id),
			(SELECT COUNT(*) FROM expenses e WHERE e.group_id = g.id),
			(SELECT COALESCE(SUM(e.amount), 0) FROM expenses e WHERE e.group_id = g.id)
		FROM groups g
		WHERE g.owner_id = $1
		ORDER BY g.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*GroupWithStats
	for rows.Next() {
		g := &GroupWithStats{Group: &Group{}}
		if err := rows.Scan(
			&g.Group.ID,
			&g.Group.OwnerID,
			&g.Group.Name,
			&g.Group.CreatedAt,
			&g.Group.UpdatedAt,
			&g.Stats.ParticipantCount,
			&g.Stats.TotalExpenses,
			&g.Stats.TotalAmount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// Update modifies an existing group
func (r *Repository) Update(ctx context.Context, id uuid.UUID, req *UpdateGroupRequest) (*Group, error) {
	query := `
		UPDATE groups
		SET name = COALESCE($2, name), updated_at = NOW()
		WHERE id = $1
		RETURNING id, owner_id, name, created_at, updated_at
	`

	group := &Group{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name).Scan(
		&group.ID,
		&group.OwnerID,
		&group.Name,
		&group.CreatedAt,
		&group.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update group: %w", err)
	}

	return group, nil
}

// Delete removes a group; participants, expenses and splits cascade
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

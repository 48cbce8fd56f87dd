package participant

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles participant data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new participant repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new participant into the database
func (r *Repository) Create(ctx context.Context, groupID uuid.UUID, name, color string, avatarURL *string) (*Participant, error) {
	query := `
		INSERT INTO participants (id, group_id, name, color, avatar_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, group_id, name, color, avatar_url, created_at
	`

	p := &Participant{}
	err := r.db.QueryRowContext(ctx, query, uuid.New(), groupID, name, color, avatarURL).Scan(
		&p.ID,
		&p.GroupID,
		&p.Name,
		&p.Color,
		&p.AvatarURL,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	return p, nil
}

// GetByID retrieves a participant by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Participant, error) {
	query := `
		SELECT id, group_id, name, color, avatar_url, created_at
		FROM participants
		WHERE id = $1
	`

	p := &Participant{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.GroupID,
		&p.Name,
		&p.Color,
		&p.AvatarURL,
		&p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return p, nil
}

// ListByGroup retrieves all participants of a group in join order
func (r *Repository) ListByGroup(ctx context.Context, groupID uuid.UUID) ([]*Participant, error) {
	query := `
		SELECT id, group_id, name, color, avatar_url, created_at
		FROM participants
		WHERE group_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []*Participant
	for rows.Next() {
		p := &Participant{}
		if err := rows.Scan(&p.ID, &p.GroupID, &p.Name, &p.Color, &p.AvatarURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

// CountByGroup returns how many participants a group currently has
func (r *Repository) CountByGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants WHERE group_id = $1`, groupID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}
	return count, nil
}

// GetByName retrieves a participant of a group by display name
func (r *Repository) GetByName(ctx context.Context, groupID uuid.UUID, name string) (*Participant, error) {
	query := `
		SELECT id, group_id, name, color, avatar_url, created_at
		FROM participants
		WHERE group_id = $1 AND name = $2
	`

	p := &Participant{}
	err := r.db.QueryRowContext(ctx, query, groupID, name).Scan(
		&p.ID,
		&p.GroupID,
		&p.Name,
		&p.Color,
		&p.AvatarURL,
		&p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant by name: %w", err)
	}

	return p, nil
}

// Update modifies an existing participant
func (r *Repository) Update(ctx context.Context, id uuid.UUID, req *UpdateParticipantRequest) (*Participant, error) {
	query := `
		UPDATE participants
		SET name = COALESCE($2, name),
		    color = COALESCE($3, color),
		    avatar_url = COALESCE($4, avatar_url)
		WHERE id = $1
		RETURNING id, group_id, name, color, avatar_url, created_at
	`

	p := &Participant{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Color, req.AvatarURL).Scan(
		&p.ID,
		&p.GroupID,
		&p.Name,
		&p.Color,
		&p.AvatarURL,
		&p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update participant: %w", err)
	}

	return p, nil
}

// Delete removes a participant from its group
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM participants WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return nil
}

// HasExpenseActivity reports whether the participant pays for or shares
// in any expense; such participants cannot be removed
func (r *Repository) HasExpenseActivity(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM expenses WHERE payer_id = $1
			UNION
			SELECT 1 FROM expense_splits WHERE participant_id = $1
		)
	`

	var active bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&active); err != nil {
		return false, fmt.Errorf("failed to check participant activity: %w", err)
	}
	return active, nil
}

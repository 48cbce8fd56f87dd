package balance

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/splitmint/splitmint/internal/expense"
	"github.com/splitmint/splitmint/internal/participant"
)

// Repository loads the read-only snapshots the balance engine consumes
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new balance repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Snapshot reads a group's participants and expenses-with-splits inside one
// repeatable-read transaction, so the engine never sees an expense without
// its splits or a half-written creation. Participants come back in join
// order, which fixes the enumeration order of everything derived from them.
func (r *Repository) Snapshot(ctx context.Context, groupID uuid.UUID) ([]*participant.Participant, []*expense.ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	participants, err := loadParticipants(ctx, tx, groupID)
	if err != nil {
		return nil, nil, err
	}

	expenses, err := loadExpenses(ctx, tx, groupID)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit snapshot transaction: %w", err)
	}

	return participants, expenses, nil
}

func loadParticipants(ctx context.Context, tx *sql.Tx, groupID uuid.UUID) ([]*participant.Participant, error) {
	query := `
		SELECT id, group_id, name, color, avatar_url, created_at
		FROM participants
		WHERE group_id = $1
		ORDER BY created_at, id
	`

	rows, err := tx.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load participants: %w", err)
	}
	defer rows.Close()

	var participants []*participant.Participant
	for rows.Next() {
		p := &participant.Participant{}
		if err := rows.Scan(&p.ID, &p.GroupID, &p.Name, &p.Color, &p.AvatarURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

func loadExpenses(ctx context.Context, tx *sql.Tx, groupID uuid.UUID) ([]*expense.ExpenseWithSplits, error) {
	expenseQuery := `
		SELECT id, group_id, payer_id, description, amount, category, expense_date, split_policy, created_at
		FROM expenses
		WHERE group_id = $1
		ORDER BY created_at, id
	`

	rows, err := tx.QueryContext(ctx, expenseQuery, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.ExpenseWithSplits
	byID := make(map[uuid.UUID]*expense.ExpenseWithSplits)
	for rows.Next() {
		e := &expense.Expense{}
		if err := rows.Scan(
			&e.ID, &e.GroupID, &e.PayerID, &e.Description, &e.Amount,
			&e.Category, &e.ExpenseDate, &e.SplitPolicy, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		ews := &expense.ExpenseWithSplits{Expense: e}
		expenses = append(expenses, ews)
		byID[e.ID] = ews
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	splitQuery := `
		SELECT s.id, s.expense_id, s.participant_id, s.amount, s.percentage
		FROM expense_splits s
		JOIN expenses e ON s.expense_id = e.id
		WHERE e.group_id = $1
		ORDER BY s.expense_id, s.id
	`

	splitRows, err := tx.QueryContext(ctx, splitQuery, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		s := &expense.Split{}
		if err := splitRows.Scan(&s.ID, &s.ExpenseID, &s.ParticipantID, &s.Amount, &s.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		if ews, ok := byID[s.ExpenseID]; ok {
			ews.Splits = append(ews.Splits, s)
		}
	}

	return expenses, splitRows.Err()
}

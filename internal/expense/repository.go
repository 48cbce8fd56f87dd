package expense

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/splitmint/splitmint/internal/expense/split"
)

// Repository handles expense and split data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithSplits inserts an expense and its computed splits in one
// transaction, so a split set never exists partially
func (r *Repository) CreateWithSplits(ctx context.Context, e *Expense, shares []split.Share) (*ExpenseWithSplits, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	expenseQuery := `
		INSERT INTO expenses (id, group_id, payer_id, description, amount, category, expense_date, split_policy)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, group_id, payer_id, description, amount, category, expense_date, split_policy, created_at
	`

	created := &Expense{}
	err = tx.QueryRowContext(ctx, expenseQuery,
		uuid.New(),
		e.GroupID,
		e.PayerID,
		e.Description,
		e.Amount,
		e.Category,
		e.ExpenseDate,
		e.SplitPolicy,
	).Scan(
		&created.ID,
		&created.GroupID,
		&created.PayerID,
		&created.Description,
		&created.Amount,
		&created.Category,
		&created.ExpenseDate,
		&created.SplitPolicy,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	splitQuery := `
		INSERT INTO expense_splits (id, expense_id, participant_id, amount, percentage)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, expense_id, participant_id, amount, percentage
	`

	splits := make([]*Split, len(shares))
	for i, share := range shares {
		s := &Split{}
		err := tx.QueryRowContext(ctx, splitQuery,
			uuid.New(),
			created.ID,
			share.ParticipantID,
			share.Amount,
			share.Percentage,
		).Scan(&s.ID, &s.ExpenseID, &s.ParticipantID, &s.Amount, &s.Percentage)
		if err != nil {
			return nil, fmt.Errorf("failed to create split: %w", err)
		}
		splits[i] = s
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	return &ExpenseWithSplits{Expense: created, Splits: splits}, nil
}

// GetByID retrieves an expense by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.category,
		       e.expense_date, e.split_policy, e.created_at, p.name
		FROM expenses e
		JOIN participants p ON e.payer_id = p.id
		WHERE e.id = $1
	`

	e := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID,
		&e.GroupID,
		&e.PayerID,
		&e.Description,
		&e.Amount,
		&e.Category,
		&e.ExpenseDate,
		&e.SplitPolicy,
		&e.CreatedAt,
		&e.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return e, nil
}

// GetSplitsByExpenseID retrieves all splits of an expense in creation order
func (r *Repository) GetSplitsByExpenseID(ctx context.Context, expenseID uuid.UUID) ([]*Split, error) {
	query := `
		SELECT s.id, s.expense_id, s.participant_id, s.amount, s.percentage, p.name
		FROM expense_splits s
		JOIN participants p ON s.participant_id = p.id
		WHERE s.expense_id = $1
		ORDER BY s.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	var splits []*Split
	for rows.Next() {
		s := &Split{}
		if err := rows.Scan(&s.ID, &s.ExpenseID, &s.ParticipantID, &s.Amount, &s.Percentage, &s.ParticipantName); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, s)
	}

	return splits, rows.Err()
}

// ListByGroup retrieves a filtered, paginated page of a group's expenses
// plus the total row count for the filter
func (r *Repository) ListByGroup(ctx context.Context, groupID uuid.UUID, filter *ListFilter) ([]*Expense, int, error) {
	where := []string{"e.group_id = $1"}
	args := []interface{}{groupID}

	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Category != "" {
		where = append(where, "e.category = "+arg(filter.Category))
	}
	if filter.ParticipantID != nil {
		ph := arg(*filter.ParticipantID)
		where = append(where, "(e.payer_id = "+ph+" OR e.id IN (SELECT expense_id FROM expense_splits WHERE participant_id = "+ph+"))")
	}
	if filter.DateFrom != "" {
		where = append(where, "e.expense_date >= "+arg(filter.DateFrom))
	}
	if filter.DateTo != "" {
		where = append(where, "e.expense_date <= "+arg(filter.DateTo))
	}
	if filter.Search != "" {
		where = append(where, "e.description ILIKE "+arg("%"+filter.Search+"%"))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM expenses e WHERE " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.group_id, e.payer_id, e.description, e.amount, e.category,
		       e.expense_date, e.split_policy, e.created_at, p.name
		FROM expenses e
		JOIN participants p ON e.payer_id = p.id
		WHERE ` + whereClause + `
		ORDER BY e.expense_date DESC, e.created_at DESC
		LIMIT ` + arg(filter.PerPage) + ` OFFSET ` + arg((filter.Page-1)*filter.PerPage)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(
			&e.ID, &e.GroupID, &e.PayerID, &e.Description, &e.Amount, &e.Category,
			&e.ExpenseDate, &e.SplitPolicy, &e.CreatedAt, &e.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, total, rows.Err()
}

// Update modifies the editable fields of an expense
func (r *Repository) Update(ctx context.Context, id uuid.UUID, req *UpdateExpenseRequest) (*Expense, error) {
	query := `
		UPDATE expenses
		SET description = COALESCE($2, description),
		    category = COALESCE($3, category)
		WHERE id = $1
		RETURNING id, group_id, payer_id, description, amount, category, expense_date, split_policy, created_at
	`

	e := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id, req.Description, req.Category).Scan(
		&e.ID,
		&e.GroupID,
		&e.PayerID,
		&e.Description,
		&e.Amount,
		&e.Category,
		&e.ExpenseDate,
		&e.SplitPolicy,
		&e.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return e, nil
}

// Delete removes an expense; its splits cascade
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

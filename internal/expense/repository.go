package expense

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/deepakjoshi9239/finance-tracker/internal/ownership"
)

// Repository persists expenses. Missing records yield ownership.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, expense Expense) error
	Get(ctx context.Context, id string) (Expense, error)
	ListByOwner(ctx context.Context, userID string) ([]Expense, error)
	Update(ctx context.Context, expense Expense) error
	Delete(ctx context.Context, id, userID string) error
}

// PostgresRepository stores expenses in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const expenseColumns = `id, user_id, amount, category, description, spent_at, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, e Expense) error {
	expenseID, err := uuid.Parse(e.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(e.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO expenses (`+expenseColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		expenseID, userID, e.Amount, e.Category, e.Description, e.Date.UTC(), e.CreatedAt.UTC(), e.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (Expense, error) {
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return Expense{}, ownership.ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = $1`, expenseID)
	return scanExpense(row)
}

// ListByOwner returns the owner's expenses, most recent date first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]Expense, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return []Expense{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+expenseColumns+` FROM expenses
        WHERE user_id = $1 ORDER BY spent_at DESC, created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, e Expense) error {
	expenseID, err := uuid.Parse(e.ID)
	if err != nil {
		return ownership.ErrNotFound
	}
	userID, err := uuid.Parse(e.UserID)
	if err != nil {
		return ownership.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `UPDATE expenses SET amount = $3, category = $4, description = $5,
        spent_at = $6, updated_at = $7 WHERE id = $1 AND user_id = $2`,
		expenseID, userID, e.Amount, e.Category, e.Description, e.Date.UTC(), e.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ownership.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	expenseID, err := uuid.Parse(id)
	if err != nil {
		return ownership.ErrNotFound
	}
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return ownership.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, expenseID, ownerID)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ownership.ErrNotFound
	}
	return nil
}

func scanExpense(row pgx.Row) (Expense, error) {
	var (
		e                           Expense
		id, userID                  uuid.UUID
		spentAt, createdAt, updated time.Time
	)
	if err := row.Scan(&id, &userID, &e.Amount, &e.Category, &e.Description, &spentAt, &createdAt, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Expense{}, ownership.ErrNotFound
		}
		return Expense{}, fmt.Errorf("scan expense: %w", err)
	}
	e.ID = id.String()
	e.UserID = userID.String()
	e.Date = spentAt.UTC()
	e.CreatedAt = createdAt.UTC()
	e.UpdatedAt = updated.UTC()
	return e, nil
}

package budget

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

// Repository persists budgets. Missing records yield ownership.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, budget Budget) error
	Get(ctx context.Context, id string) (Budget, error)
	ListByOwner(ctx context.Context, userID string) ([]Budget, error)
	Update(ctx context.Context, budget Budget) error
	Delete(ctx context.Context, id, userID string) error
}

// PostgresRepository stores budgets in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const budgetColumns = `id, user_id, income, rent, food, entertainment, utilities, transportation, month, created_at, updated_at`

// Create inserts a budget record.
func (r *PostgresRepository) Create(ctx context.Context, b Budget) error {
	budgetID, err := uuid.Parse(b.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(b.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO budgets (`+budgetColumns+`)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		budgetID, userID, b.Income, b.Rent, b.Food, b.Entertainment, b.Utilities, b.Transportation,
		b.Month, b.CreatedAt.UTC(), b.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

// Get fetches a budget by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Budget, error) {
	budgetID, err := uuid.Parse(id)
	if err != nil {
		return Budget{}, ownership.ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, budgetID)
	return scanBudget(row)
}

// ListByOwner returns the owner's budgets, oldest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]Budget, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return []Budget{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+budgetColumns+` FROM budgets
        WHERE user_id = $1 ORDER BY created_at ASC, id ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// Update overwrites the mutable fields of a budget still owned by b.UserID.
func (r *PostgresRepository) Update(ctx context.Context, b Budget) error {
	budgetID, err := uuid.Parse(b.ID)
	if err != nil {
		return ownership.ErrNotFound
	}
	userID, err := uuid.Parse(b.UserID)
	if err != nil {
		return ownership.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `UPDATE budgets SET income = $3, rent = $4, food = $5, entertainment = $6,
        utilities = $7, transportation = $8, month = $9, updated_at = $10
        WHERE id = $1 AND user_id = $2`,
		budgetID, userID, b.Income, b.Rent, b.Food, b.Entertainment, b.Utilities, b.Transportation,
		b.Month, b.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ownership.ErrNotFound
	}
	return nil
}

// Delete removes a budget owned by userID.
func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	budgetID, err := uuid.Parse(id)
	if err != nil {
		return ownership.ErrNotFound
	}
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return ownership.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, ownerID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ownership.ErrNotFound
	}
	return nil
}

func scanBudget(row pgx.Row) (Budget, error) {
	var (
		b                    Budget
		id, userID           uuid.UUID
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &userID, &b.Income, &b.Rent, &b.Food, &b.Entertainment, &b.Utilities,
		&b.Transportation, &b.Month, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Budget{}, ownership.ErrNotFound
		}
		return Budget{}, fmt.Errorf("scan budget: %w", err)
	}
	b.ID = id.String()
	b.UserID = userID.String()
	b.CreatedAt = createdAt.UTC()
	b.UpdatedAt = updatedAt.UTC()
	return b, nil
}

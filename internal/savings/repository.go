package savings

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

// Repository persists savings goals. Missing records yield ownership.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, goal Goal) error
	Get(ctx context.Context, id string) (Goal, error)
	ListByOwner(ctx context.Context, userID string) ([]Goal, error)
	Update(ctx context.Context, goal Goal) error
	Delete(ctx context.Context, id, userID string) error
}

// PostgresRepository stores savings goals in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, g Goal) error {
	goalID, err := uuid.Parse(g.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(g.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO savings_goals (id, user_id, name, amount, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`, goalID, userID, g.Name, g.Amount, g.CreatedAt.UTC(), g.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert savings goal: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (Goal, error) {
	goalID, err := uuid.Parse(id)
	if err != nil {
		return Goal{}, ownership.ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, name, amount, created_at, updated_at
        FROM savings_goals WHERE id = $1`, goalID)
	return scanGoal(row)
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, userID string) ([]Goal, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return []Goal{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id, user_id, name, amount, created_at, updated_at
        FROM savings_goals WHERE user_id = $1 ORDER BY created_at ASC, id ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	goals := []Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (r *PostgresRepository) Update(ctx context.Context, g Goal) error {
	goalID, err := uuid.Parse(g.ID)
	if err != nil {
		return ownership.ErrNotFound
	}
	userID, err := uuid.Parse(g.UserID)
	if err != nil {
		return ownership.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `UPDATE savings_goals SET name = $3, amount = $4, updated_at = $5
        WHERE id = $1 AND user_id = $2`, goalID, userID, g.Name, g.Amount, g.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("update savings goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ownership.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	goalID, err := uuid.Parse(id)
	if err != nil {
		return ownership.ErrNotFound
	}
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return ownership.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM savings_goals WHERE id = $1 AND user_id = $2`, goalID, ownerID)
	if err != nil {
		return fmt.Errorf("delete savings goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ownership.ErrNotFound
	}
	return nil
}

func scanGoal(row pgx.Row) (Goal, error) {
	var (
		g                    Goal
		id, userID           uuid.UUID
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &userID, &g.Name, &g.Amount, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Goal{}, ownership.ErrNotFound
		}
		return Goal{}, fmt.Errorf("scan savings goal: %w", err)
	}
	g.ID = id.String()
	g.UserID = userID.String()
	g.CreatedAt = createdAt.UTC()
	g.UpdatedAt = updatedAt.UTC()
	return g, nil
}

package budget

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deepakjoshi9239/finance-tracker/internal/ownership"
)

// ErrOwnerRequired is returned when a budget is created without an owner.
var ErrOwnerRequired = errors.New("budget owner is required")

// Service coordinates budget persistence behind the ownership guard.
type Service struct {
	repo  Repository
	guard ownership.Guard[Budget]
	now   func() time.Time
}

// NewService builds a budget service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		guard: ownership.Guard[Budget]{
			Load:  repo.Get,
			Owner: func(b Budget) string { return b.UserID },
		},
		now: time.Now,
	}
}

// Create stores a budget owned by ownerID.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Budget, error) {
	if ownerID == "" {
		return Budget{}, ErrOwnerRequired
	}
	now := s.now().UTC()
	b := Budget{
		ID:             uuid.NewString(),
		UserID:         ownerID,
		Income:         in.Income,
		Rent:           in.Rent,
		Food:           in.Food,
		Entertainment:  in.Entertainment,
		Utilities:      in.Utilities,
		Transportation: in.Transportation,
		Month:          strings.TrimSpace(in.Month),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return Budget{}, err
	}
	return b, nil
}

// List returns only the caller's budgets.
func (s *Service) List(ctx context.Context, ownerID string) ([]Budget, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get returns a budget the caller owns.
func (s *Service) Get(ctx context.Context, id, callerID string) (Budget, error) {
	return s.guard.Authorize(ctx, id, callerID)
}

// Update applies a partial update to a budget the caller owns.
func (s *Service) Update(ctx context.Context, id, callerID string, in UpdateInput) (Budget, error) {
	b, err := s.guard.Authorize(ctx, id, callerID)
	if err != nil {
		return Budget{}, err
	}
	in.apply(&b)
	b.Month = strings.TrimSpace(b.Month)
	b.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, b); err != nil {
		return Budget{}, err
	}
	return b, nil
}

// Delete removes a budget the caller owns.
func (s *Service) Delete(ctx context.Context, id, callerID string) error {
	if _, err := s.guard.Authorize(ctx, id, callerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, callerID)
}

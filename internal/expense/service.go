package expense

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deepakjoshi9239/finance-tracker/internal/ownership"
)

// ErrOwnerRequired is returned when an expense is recorded without an owner.
var ErrOwnerRequired = errors.New("expense owner is required")

// Service coordinates expense persistence behind the ownership guard.
type Service struct {
	repo  Repository
	guard ownership.Guard[Expense]
	now   func() time.Time
}

// NewService builds an expense service.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		guard: ownership.Guard[Expense]{
			Load:  repo.Get,
			Owner: func(e Expense) string { return e.UserID },
		},
		now: time.Now,
	}
}

// Create records an expense for ownerID, dated now unless in.Date is set.
func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Expense, error) {
	if ownerID == "" {
		return Expense{}, ErrOwnerRequired
	}
	now := s.now().UTC()
	date := in.Date
	if date.IsZero() {
		date = now
	}
	e := Expense{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Amount:      in.Amount,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Date:        date.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// List returns only the caller's expenses, most recent first.
func (s *Service) List(ctx context.Context, ownerID string) ([]Expense, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Get returns an expense the caller owns.
func (s *Service) Get(ctx context.Context, id, callerID string) (Expense, error) {
	return s.guard.Authorize(ctx, id, callerID)
}

// Update applies a partial update to an expense the caller owns.
func (s *Service) Update(ctx context.Context, id, callerID string, in UpdateInput) (Expense, error) {
	e, err := s.guard.Authorize(ctx, id, callerID)
	if err != nil {
		return Expense{}, err
	}
	if in.Amount != nil {
		e.Amount = *in.Amount
	}
	if in.Category != nil {
		e.Category = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		e.Description = strings.TrimSpace(*in.Description)
	}
	if in.Date != nil && !in.Date.IsZero() {
		e.Date = in.Date.UTC()
	}
	e.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, e); err != nil {
		return Expense{}, err
	}
	return e, nil
}

// Delete removes an expense the caller owns and returns what was removed.
func (s *Service) Delete(ctx context.Context, id, callerID string) (Expense, error) {
	e, err := s.guard.Authorize(ctx, id, callerID)
	if err != nil {
		return Expense{}, err
	}
	if err := s.repo.Delete(ctx, id, callerID); err != nil {
		return Expense{}, err
	}
	return e, nil
}

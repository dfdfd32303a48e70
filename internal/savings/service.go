package savings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/deepakjoshi9239/finance-tracker/internal/ownership"
)

// ErrOwnerRequired is returned when a goal is created without an owner.
var ErrOwnerRequired = errors.New("savings goal owner is required")

// Service manages savings goals behind the ownership guard.
type Service struct {
	repo  Repository
	guard ownership.Guard[Goal]
	now   func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		guard: ownership.Guard[Goal]{
			Load:  repo.Get,
			Owner: func(g Goal) string { return g.UserID },
		},
		now: time.Now,
	}
}

func (s *Service) Create(ctx context.Context, ownerID, name string, amount float64) (Goal, error) {
	if ownerID == "" {
		return Goal{}, ErrOwnerRequired
	}
	now := s.now().UTC()
	g := Goal{
		ID:        uuid.NewString(),
		UserID:    ownerID,
		Name:      strings.TrimSpace(name),
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, g); err != nil {
		return Goal{}, err
	}
	return g, nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]Goal, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Get(ctx context.Context, id, callerID string) (Goal, error) {
	return s.guard.Authorize(ctx, id, callerID)
}

func (s *Service) Update(ctx context.Context, id, callerID string, in UpdateInput) (Goal, error) {
	g, err := s.guard.Authorize(ctx, id, callerID)
	if err != nil {
		return Goal{}, err
	}
	if in.Name != nil {
		g.Name = strings.TrimSpace(*in.Name)
	}
	if in.Amount != nil {
		g.Amount = *in.Amount
	}
	g.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, g); err != nil {
		return Goal{}, err
	}
	return g, nil
}

func (s *Service) Delete(ctx context.Context, id, callerID string) error {
	if _, err := s.guard.Authorize(ctx, id, callerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, callerID)
}

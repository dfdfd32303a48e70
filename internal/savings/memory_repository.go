package savings

import (
	"context"
	"sync"

	"github.com/deepakjoshi9239/finance-tracker/internal/ownership"
)

type memoryRepository struct {
	mu    sync.RWMutex
	goals []Goal
}

// NewMemoryRepository returns an in-memory savings goal repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{}
}

func (r *memoryRepository) Create(_ context.Context, g Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.goals = append(r.goals, g)
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(id); i >= 0 {
		return r.goals[i], nil
	}
	return Goal{}, ownership.ErrNotFound
}

func (r *memoryRepository) ListByOwner(_ context.Context, userID string) ([]Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Goal{}
	for _, g := range r.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, g Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(g.ID)
	if i < 0 || r.goals[i].UserID != g.UserID {
		return ownership.ErrNotFound
	}
	r.goals[i] = g
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 || r.goals[i].UserID != userID {
		return ownership.ErrNotFound
	}
	r.goals = append(r.goals[:i], r.goals[i+1:]...)
	return nil
}

func (r *memoryRepository) indexOf(id string) int {
	for i, g := range r.goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}

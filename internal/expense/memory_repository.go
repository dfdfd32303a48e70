package expense

import (
	"context"
	"sort"
	"sync"

	"github.com/deepakjoshi9239/finance-tracker/internal/ownership"
)

type memoryRepository struct {
	mu       sync.RWMutex
	expenses map[string]Expense
}

// NewMemoryRepository returns an in-memory expense repository for tests and local runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{expenses: make(map[string]Expense)}
}

func (r *memoryRepository) Create(_ context.Context, e Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expenses[e.ID] = e
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.expenses[id]
	if !ok {
		return Expense{}, ownership.ErrNotFound
	}
	return e, nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, userID string) ([]Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Expense{}
	for _, e := range r.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, e Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.expenses[e.ID]
	if !ok || existing.UserID != e.UserID {
		return ownership.ErrNotFound
	}
	r.expenses[e.ID] = e
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.expenses[id]
	if !ok || existing.UserID != userID {
		return ownership.ErrNotFound
	}
	delete(r.expenses, id)
	return nil
}

package budget

import (
	"context"
	"sync"

	"github.com/deepakjoshi9239/finance-tracker/internal/ownership"
)

type memoryRepository struct {
	mu      sync.RWMutex
	budgets map[string]Budget
	order   []string
}

// NewMemoryRepository returns an in-memory budget repository for tests and local runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{budgets: make(map[string]Budget)}
}

func (r *memoryRepository) Create(_ context.Context, b Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.budgets[b.ID] = b
	r.order = append(r.order, b.ID)
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.budgets[id]
	if !ok {
		return Budget{}, ownership.ErrNotFound
	}
	return b, nil
}

func (r *memoryRepository) ListByOwner(_ context.Context, userID string) ([]Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Budget{}
	for _, id := range r.order {
		if b, ok := r.budgets[id]; ok && b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memoryRepository) Update(_ context.Context, b Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.budgets[b.ID]
	if !ok || existing.UserID != b.UserID {
		return ownership.ErrNotFound
	}
	r.budgets[b.ID] = b
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.budgets[id]
	if !ok || existing.UserID != userID {
		return ownership.ErrNotFound
	}
	delete(r.budgets, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

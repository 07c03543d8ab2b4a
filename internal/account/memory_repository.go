package account

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepository is an in-memory account store for tests and running
// without a database.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[int64]Account
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[int64]Account)}
}

// Seed adds or replaces an account record.
func (r *MemoryRepository) Seed(a Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = a
}

// List returns one page of accounts plus the total matching count.
func (r *MemoryRepository) List(_ context.Context, filter ListFilter) ([]Account, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []Account
	for _, a := range r.accounts {
		if filter.Status != "" && a.State != filter.Status {
			continue
		}
		if filter.Search != "" && !matchesSearch(a, filter.Search) {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := len(matched)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// Get fetches a single account by identifier.
func (r *MemoryRepository) Get(_ context.Context, id int64) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return a, nil
}

// All returns every account in export order.
func (r *MemoryRepository) All(_ context.Context, activeOnly bool) ([]Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Account
	for _, a := range r.accounts {
		if activeOnly && !a.Active() {
			continue
		}
		out = append(out, a)
	}
	if activeOnly {
		sort.Slice(out, func(i, j int) bool {
			if out[i].Name != out[j].Name {
				return out[i].Name < out[j].Name
			}
			return out[i].ID < out[j].ID
		})
	} else {
		sort.Slice(out, func(i, j int) bool {
			if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].ID > out[j].ID
		})
	}
	return out, nil
}

func matchesSearch(a Account, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{a.Name, a.Email, a.CUIT, a.CVU} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

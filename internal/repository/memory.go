package repository

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/smart-entry/visitor-service/internal/domain"
)

// memoryVisitRepository keeps visits in process memory. It backs the tests
// and the DSN-less kiosk demo mode. Missing ids surface as pgx.ErrNoRows so
// error mapping matches the postgres implementation.
type memoryVisitRepository struct {
	mu     sync.RWMutex
	visits map[int64]domain.Visit
	order  []int64
	nextID int64
}

// NewMemoryVisitRepository builds an empty in-memory visit store.
func NewMemoryVisitRepository() VisitRepository {
	return &memoryVisitRepository{
		visits: make(map[int64]domain.Visit),
		nextID: 1,
	}
}

func (r *memoryVisitRepository) Create(_ context.Context, visit *domain.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	visit.ID = r.nextID
	r.nextID++
	visit.CreatedAt = now
	visit.UpdatedAt = now

	r.visits[visit.ID] = *visit
	r.order = append(r.order, visit.ID)
	return nil
}

func (r *memoryVisitRepository) Update(_ context.Context, visit *domain.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.visits[visit.ID]; !ok {
		return pgx.ErrNoRows
	}
	visit.UpdatedAt = time.Now()
	r.visits[visit.ID] = *visit
	return nil
}

func (r *memoryVisitRepository) GetByID(_ context.Context, id int64) (*domain.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	visit, ok := r.visits[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &visit, nil
}

// ListAll returns visits in insertion order, the tie-break order for the
// query engine's stable sorts.
func (r *memoryVisitRepository) ListAll(_ context.Context) ([]domain.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Visit, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.visits[id])
	}
	return result, nil
}

// memoryUserRepository mirrors the postgres user repository in memory.
type memoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]domain.User
	order  []int64
	nextID int64
}

// NewMemoryUserRepository builds an empty in-memory user store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users:  make(map[int64]domain.User),
		nextID: 1,
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = cloneUser(*user)
	r.order = append(r.order, user.ID)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cloned := cloneUser(user)
	return &cloned, nil
}

func (r *memoryUserRepository) GetByEmployeeID(_ context.Context, employeeID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if r.users[id].EmployeeID == employeeID {
			cloned := cloneUser(r.users[id])
			return &cloned, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepository) ListAll(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, cloneUser(r.users[id]))
	}
	return result, nil
}

func (r *memoryUserRepository) UpdateRoles(_ context.Context, id int64, roles []domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Roles = append([]domain.Role(nil), roles...)
	user.UpdatedAt = time.Now()
	r.users[id] = user
	return nil
}

func cloneUser(user domain.User) domain.User {
	user.Roles = append([]domain.Role(nil), user.Roles...)
	return user
}

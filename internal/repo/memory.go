package repo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
)

// MemEmployeeRepo keeps employee records in process memory, in insertion order.
type MemEmployeeRepo struct {
	mu    sync.RWMutex
	byID  map[string]dom.Employee
	order []string
	now   func() time.Time
}

func NewMemEmployeeRepo() *MemEmployeeRepo {
	return &MemEmployeeRepo{byID: make(map[string]dom.Employee), now: time.Now}
}

func (r *MemEmployeeRepo) List(ctx context.Context) ([]dom.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]dom.Employee, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.byID[id])
	}
	return list, nil
}

func (r *MemEmployeeRepo) GetByID(ctx context.Context, id string) (dom.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	if !ok {
		return dom.Employee{}, fmt.Errorf("get employee: %w", dom.ErrNotFound)
	}
	return e, nil
}

func (r *MemEmployeeRepo) Create(ctx context.Context, e dom.Employee) (dom.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().UTC()
	e.ID = uuid.NewString()
	e.CreatedAt = now
	e.UpdatedAt = now
	r.byID[e.ID] = e
	r.order = append(r.order, e.ID)
	return e, nil
}

func (r *MemEmployeeRepo) Update(ctx context.Context, id string, f dom.EmployeeFields) (dom.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[id]
	if !ok {
		return dom.Employee{}, fmt.Errorf("update employee: %w", dom.ErrNotFound)
	}
	e = f.Apply(e)
	e.UpdatedAt = r.now().UTC()
	r.byID[id] = e
	return e, nil
}

func (r *MemEmployeeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return fmt.Errorf("delete employee: %w", dom.ErrNotFound)
	}
	delete(r.byID, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// MemUserRepo keeps user accounts in process memory.
type MemUserRepo struct {
	mu         sync.RWMutex
	byID       map[string]dom.User
	byUsername map[string]string
}

func NewMemUserRepo() *MemUserRepo {
	return &MemUserRepo{byID: make(map[string]dom.User), byUsername: make(map[string]string)}
}

func (r *MemUserRepo) GetByUsername(ctx context.Context, username string) (dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byUsername[username]
	if !ok {
		return dom.User{}, fmt.Errorf("get user by username: %w", dom.ErrNotFound)
	}
	return r.byID[id], nil
}

func (r *MemUserRepo) GetByID(ctx context.Context, id string) (dom.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return dom.User{}, fmt.Errorf("get user: %w", dom.ErrNotFound)
	}
	return u, nil
}

func (r *MemUserRepo) Create(ctx context.Context, username, passwordHash string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUsername[username]; ok {
		return dom.User{}, fmt.Errorf("create user %q: %w", username, dom.ErrUsernameTaken)
	}
	u := dom.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.byID[u.ID] = u
	r.byUsername[username] = u.ID
	return u, nil
}

// Remove deletes an account. Sessions that still reference it stop resolving.
func (r *MemUserRepo) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		delete(r.byUsername, u.Username)
		delete(r.byID, id)
	}
}

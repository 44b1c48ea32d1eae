package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
	"github.com/leodalati/Employee-Record-Management-System/internal/repo"
)

// EmployeeService is the record store contract used by the handlers.
type EmployeeService struct {
	repo repo.EmployeeRepo
}

func NewEmployeeService(r repo.EmployeeRepo) *EmployeeService {
	return &EmployeeService{repo: r}
}

func (s *EmployeeService) List(ctx context.Context) ([]dom.Employee, error) {
	return s.repo.List(ctx)
}

func (s *EmployeeService) GetByID(ctx context.Context, id string) (dom.Employee, error) {
	id, err := parseID(id)
	if err != nil {
		return dom.Employee{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// Create stores a new record. An empty field set is accepted.
func (s *EmployeeService) Create(ctx context.Context, f dom.EmployeeFields) (dom.Employee, error) {
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return dom.Employee{}, err
	}
	return s.repo.Create(ctx, f.Apply(dom.Employee{}))
}

// Update merges the provided fields onto the record; absent fields are kept.
func (s *EmployeeService) Update(ctx context.Context, id string, f dom.EmployeeFields) (dom.Employee, error) {
	id, err := parseID(id)
	if err != nil {
		return dom.Employee{}, err
	}
	f = f.Normalize()
	if err := f.Validate(); err != nil {
		return dom.Employee{}, err
	}
	if f.IsEmpty() {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, f)
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// parseID returns the canonical form of a record id.
func parseID(raw string) (string, error) {
	u, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", dom.ErrInvalidID, raw)
	}
	return u.String(), nil
}

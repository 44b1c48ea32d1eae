package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Employee is one employee record. ID is assigned by the store and never changes.
type Employee struct {
	ID         string
	Name       string
	Position   string
	Department string
	Salary     float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmployeeFields is a partial set of employee attributes. A nil member means
// the field was not provided and must be left untouched.
type EmployeeFields struct {
	Name       *string
	Position   *string
	Department *string
	Salary     *float64
}

// Normalize trims surrounding whitespace from the text fields.
func (f EmployeeFields) Normalize() EmployeeFields {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	f.Name = trim(f.Name)
	f.Position = trim(f.Position)
	f.Department = trim(f.Department)
	return f
}

// Validate rejects salaries that cannot be stored meaningfully.
func (f EmployeeFields) Validate() error {
	if f.Salary == nil {
		return nil
	}
	s := *f.Salary
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return fmt.Errorf("%w: salary must be a finite number", ErrValidation)
	}
	if s < 0 {
		return fmt.Errorf("%w: salary must not be negative", ErrValidation)
	}
	return nil
}

// Apply returns e with every provided field replaced. The ID is kept.
func (f EmployeeFields) Apply(e Employee) Employee {
	if f.Name != nil {
		e.Name = *f.Name
	}
	if f.Position != nil {
		e.Position = *f.Position
	}
	if f.Department != nil {
		e.Department = *f.Department
	}
	if f.Salary != nil {
		e.Salary = *f.Salary
	}
	return e
}

// IsEmpty reports whether no field was provided.
func (f EmployeeFields) IsEmpty() bool {
	return f.Name == nil && f.Position == nil && f.Department == nil && f.Salary == nil
}

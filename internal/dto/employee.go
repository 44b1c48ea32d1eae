package dto

import (
	"fmt"
	"strconv"
	"strings"

	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
)

// EmployeeForm is the posted body of the create and update forms. A key
// that is absent stays nil; a key sent empty binds to "". Other keys are ignored.
type EmployeeForm struct {
	Name       *string `form:"name"`
	Position   *string `form:"position"`
	Department *string `form:"department"`
	Salary     *string `form:"salary"`
}

// Fields converts the form into a field set. An empty salary is treated as absent.
func (f EmployeeForm) Fields() (dom.EmployeeFields, error) {
	out := dom.EmployeeFields{Name: f.Name, Position: f.Position, Department: f.Department}
	if f.Salary == nil {
		return out, nil
	}
	s := strings.TrimSpace(*f.Salary)
	if s == "" {
		return out, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return dom.EmployeeFields{}, fmt.Errorf("%w: salary must be a number, got %q", dom.ErrValidation, s)
	}
	out.Salary = &n
	return out, nil
}

// EmployeeView is the shape the record templates render.
type EmployeeView struct {
	ID         string
	Name       string
	Position   string
	Department string
	Salary     string
}

func NewEmployeeView(e dom.Employee) EmployeeView {
	return EmployeeView{
		ID:         e.ID,
		Name:       e.Name,
		Position:   e.Position,
		Department: e.Department,
		Salary:     strconv.FormatFloat(e.Salary, 'f', -1, 64),
	}
}

func NewEmployeeViews(list []dom.Employee) []EmployeeView {
	out := make([]EmployeeView, len(list))
	for i := range list {
		out[i] = NewEmployeeView(list[i])
	}
	return out
}

package repo

import (
	"context"

	dom "github.com/leodalati/Employee-Record-Management-System/internal/domain"
)

// EmployeeRepo provides employee record persistence. Lookups by an unknown id
// fail with dom.ErrNotFound.
type EmployeeRepo interface {
	List(ctx context.Context) ([]dom.Employee, error)
	GetByID(ctx context.Context, id string) (dom.Employee, error)
	Create(ctx context.Context, e dom.Employee) (dom.Employee, error)
	Update(ctx context.Context, id string, f dom.EmployeeFields) (dom.Employee, error)
	Delete(ctx context.Context, id string) error
}

const employeeColumns = `id::text, name, position, department, salary, created_at, updated_at`

// PGEmployeeRepo implements EmployeeRepo with Postgres.
type PGEmployeeRepo struct {
	db DB
}

// NewPGEmployeeRepo returns a new PGEmployeeRepo.
func NewPGEmployeeRepo(db DB) *PGEmployeeRepo {
	return &PGEmployeeRepo{db: db}
}

func (r *PGEmployeeRepo) List(ctx context.Context) ([]dom.Employee, error) {
	rows, err := r.db.Query(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY created_at, id`)
	if err != nil {
		return nil, pgErr("list employees", err)
	}
	defer rows.Close()
	list := []dom.Employee{}
	for rows.Next() {
		var e dom.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Position, &e.Department, &e.Salary,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, pgErr("scan employee", err)
		}
		list = append(list, e)
	}
	return list, pgErr("list employees", rows.Err())
}

func (r *PGEmployeeRepo) GetByID(ctx context.Context, id string) (dom.Employee, error) {
	var e dom.Employee
	err := r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id).Scan(
		&e.ID, &e.Name, &e.Position, &e.Department, &e.Salary, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, pgErr("get employee", err)
}

func (r *PGEmployeeRepo) Create(ctx context.Context, in dom.Employee) (dom.Employee, error) {
	query := `
		INSERT INTO employees (name, position, department, salary)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + employeeColumns
	var e dom.Employee
	err := r.db.QueryRow(ctx, query, in.Name, in.Position, in.Department, in.Salary).Scan(
		&e.ID, &e.Name, &e.Position, &e.Department, &e.Salary, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, pgErr("create employee", err)
}

// Update merges the provided fields; NULL parameters keep the stored value.
func (r *PGEmployeeRepo) Update(ctx context.Context, id string, f dom.EmployeeFields) (dom.Employee, error) {
	query := `
		UPDATE employees SET
			name = COALESCE($2, name),
			position = COALESCE($3, position),
			department = COALESCE($4, department),
			salary = COALESCE($5, salary),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + employeeColumns
	var e dom.Employee
	err := r.db.QueryRow(ctx, query, id, f.Name, f.Position, f.Department, f.Salary).Scan(
		&e.ID, &e.Name, &e.Position, &e.Department, &e.Salary, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, pgErr("update employee", err)
}

func (r *PGEmployeeRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return pgErr("delete employee", err)
	}
	if tag.RowsAffected() == 0 {
		return pgErr("delete employee", dom.ErrNotFound)
	}
	return nil
}

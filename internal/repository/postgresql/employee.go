package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, name, role, employment_type, salary, email, phone_number, joined_at, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Role,
		&e.EmploymentType,
		&e.Salary,
		&e.Email,
		&e.PhoneNumber,
		&e.JoinedAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, "%"+s+"%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR role ILIKE $%d)", len(args), len(args)))
	}
	if filter.EmploymentType != "" {
		args = append(args, filter.EmploymentType)
		conditions = append(conditions, fmt.Sprintf("employment_type = $%d", len(args)))
	}
	if filter.MarkableOnly {
		conditions = append(conditions, "employment_type NOT IN ('Remote', 'Myself')")
	}

	query := `SELECT ` + employeeColumns + ` FROM employees`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (name, role, employment_type, salary, email, phone_number, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		newEmployee.Name,
		newEmployee.Role,
		newEmployee.EmploymentType,
		newEmployee.Salary,
		newEmployee.Email,
		newEmployee.PhoneNumber,
		newEmployee.JoinedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return created, nil
}

// Update implements employee.EmployeeRepository. Only non-nil fields change.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	var (
		sets []string
		args []interface{}
	)
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		set("name", *req.Name)
	}
	if req.Role != nil {
		set("role", *req.Role)
	}
	if req.EmploymentType != nil {
		set("employment_type", *req.EmploymentType)
	}
	if req.Salary != nil {
		set("salary", *req.Salary)
	}
	if req.Email != nil {
		set("email", nullIfBlank(*req.Email))
	}
	if req.PhoneNumber != nil {
		set("phone_number", nullIfBlank(*req.PhoneNumber))
	}
	if req.JoinedAt != nil {
		var joinedAt *time.Time
		if s := strings.TrimSpace(*req.JoinedAt); s != "" {
			t, err := calendar.ParseDay(s)
			if err != nil {
				return employee.Employee{}, err
			}
			joinedAt = &t
		}
		set("joined_at", joinedAt)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), employeeColumns)

	updated, err := scanEmployee(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmailExists
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %s: %w", id, err)
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func nullIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

package employee

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
	}
}

// Helper function to map Employee to EmployeeResponse
func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	var joinedAt *string
	if emp.JoinedAt != nil {
		s := calendar.FormatDay(*emp.JoinedAt)
		joinedAt = &s
	}

	return employee.EmployeeResponse{
		ID:             emp.ID,
		Name:           emp.Name,
		Role:           emp.Role,
		EmploymentType: string(emp.EmploymentType),
		Salary:         emp.Salary,
		Email:          emp.Email,
		PhoneNumber:    emp.PhoneNumber,
		JoinedAt:       joinedAt,
		CreatedAt:      emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      emp.UpdatedAt.Format(time.RFC3339),
	}
}

// optionalString trims v and maps blanks to nil.
func optionalString(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	return &s
}

func optionalDay(v *string) (*time.Time, error) {
	s := optionalString(v)
	if s == nil {
		return nil, nil
	}
	t, err := calendar.ParseDay(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	joinedAt, err := optionalDay(req.JoinedAt)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	newEmployee := employee.Employee{
		Name:           strings.TrimSpace(req.Name),
		Role:           strings.TrimSpace(req.Role),
		EmploymentType: employee.EmploymentType(req.EmploymentType),
		Salary:         req.Salary,
		Email:          optionalString(req.Email),
		PhoneNumber:    optionalString(req.PhoneNumber),
		JoinedAt:       joinedAt,
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "employment_type", created.EmploymentType)
	return mapEmployeeToResponse(created), nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	if filter.EmploymentType != "" && !employee.EmploymentType(filter.EmploymentType).IsValid() {
		return nil, employee.ErrInvalidEmploymentType
	}

	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}
	return responses, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if req.Role != nil {
		role := strings.TrimSpace(*req.Role)
		req.Role = &role
	}

	updated, err := s.employeeRepo.Update(ctx, id, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return mapEmployeeToResponse(updated), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Employee deleted", "employee_id", id)
	return nil
}

package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	List(ctx context.Context, filter EmployeeFilter) ([]EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

package attendance

import "context"

type AttendanceRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	Update(ctx context.Context, record Record) (Record, error)
	Delete(ctx context.Context, id string) error
	ExistsForEmployeeOnDay(ctx context.Context, employeeID string, day string) (bool, error)
	ListByDay(ctx context.Context, day string) ([]Record, error)
	// ListByEmployeeBetween returns raw records with from <= day <= to, oldest first.
	ListByEmployeeBetween(ctx context.Context, employeeID string, from, to string) ([]Record, error)
	ListBetween(ctx context.Context, from, to string) ([]Record, error)
}

package salary

import "context"

type ReceiptRepository interface {
	// Upsert stores the receipt keyed by (employee, month), replacing any earlier one.
	Upsert(ctx context.Context, receipt Receipt) (Receipt, error)
	GetByEmployeeMonth(ctx context.Context, employeeID string, month string) (Receipt, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Receipt, error)
	MarkSent(ctx context.Context, employeeID string, month string) (Receipt, error)
}

package salary

import (
	"context"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
)

type SalaryService interface {
	Calculate(ctx context.Context, employeeID string, month calendar.Month) (ReceiptResponse, error)
	Confirm(ctx context.Context, employeeID string, month calendar.Month) (ReceiptResponse, error)
	GetReceipt(ctx context.Context, employeeID string, month calendar.Month) (ReceiptResponse, error)
	ListReceipts(ctx context.Context, employeeID string) ([]ReceiptResponse, error)
	MarkSent(ctx context.Context, employeeID string, month calendar.Month) (ReceiptResponse, error)
	// Payslip returns the confirmed receipt together with the sheet it was derived from.
	Payslip(ctx context.Context, employeeID string, month calendar.Month) (PayslipData, error)
}

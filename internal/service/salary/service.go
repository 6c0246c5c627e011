package salary

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
)

// SheetProvider yields the normalized month an employee is paid on.
type SheetProvider interface {
	MonthlySheet(ctx context.Context, employeeID string, month calendar.Month) (attendance.Sheet, error)
}

type SalaryServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	receiptRepo  salary.ReceiptRepository
	sheets       SheetProvider
	holidays     map[string]bool
	now          func() time.Time
}

func NewSalaryService(
	employeeRepo employee.EmployeeRepository,
	receiptRepo salary.ReceiptRepository,
	sheets SheetProvider,
	holidays []string,
) salary.SalaryService {
	set := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		set[h] = true
	}
	return &SalaryServiceImpl{
		employeeRepo: employeeRepo,
		receiptRepo:  receiptRepo,
		sheets:       sheets,
		holidays:     set,
		now:          time.Now,
	}
}

func (s *SalaryServiceImpl) draft(ctx context.Context, employeeID string, month calendar.Month) (salary.Receipt, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return salary.Receipt{}, err
	}
	if emp.IsSelf() {
		return salary.Receipt{}, salary.ErrNotApplicable
	}

	sheet, err := s.sheets.MonthlySheet(ctx, employeeID, month)
	if err != nil {
		return salary.Receipt{}, fmt.Errorf("failed to build attendance sheet: %w", err)
	}

	return Calculate(emp, sheet, s.holidays)
}

// Calculate implements salary.SalaryService. Nothing is stored.
func (s *SalaryServiceImpl) Calculate(ctx context.Context, employeeID string, month calendar.Month) (salary.ReceiptResponse, error) {
	receipt, err := s.draft(ctx, employeeID, month)
	if err != nil {
		return salary.ReceiptResponse{}, err
	}
	return salary.NewReceiptResponse(receipt), nil
}

// Confirm implements salary.SalaryService. The receipt is recomputed so a stale
// draft can never be stored, then upserted on (employee, month).
func (s *SalaryServiceImpl) Confirm(ctx context.Context, employeeID string, month calendar.Month) (salary.ReceiptResponse, error) {
	receipt, err := s.draft(ctx, employeeID, month)
	if err != nil {
		return salary.ReceiptResponse{}, err
	}

	confirmedAt := s.now()
	receipt.Confirmed = true
	receipt.SalarySent = false
	receipt.ConfirmedAt = &confirmedAt

	stored, err := s.receiptRepo.Upsert(ctx, receipt)
	if err != nil {
		return salary.ReceiptResponse{}, fmt.Errorf("failed to store salary receipt: %w", err)
	}
	return salary.NewReceiptResponse(stored), nil
}

func (s *SalaryServiceImpl) GetReceipt(ctx context.Context, employeeID string, month calendar.Month) (salary.ReceiptResponse, error) {
	receipt, err := s.receiptRepo.GetByEmployeeMonth(ctx, employeeID, month.String())
	if err != nil {
		return salary.ReceiptResponse{}, err
	}
	return salary.NewReceiptResponse(receipt), nil
}

func (s *SalaryServiceImpl) ListReceipts(ctx context.Context, employeeID string) ([]salary.ReceiptResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	receipts, err := s.receiptRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]salary.ReceiptResponse, 0, len(receipts))
	for _, r := range receipts {
		responses = append(responses, salary.NewReceiptResponse(r))
	}
	return responses, nil
}

func (s *SalaryServiceImpl) MarkSent(ctx context.Context, employeeID string, month calendar.Month) (salary.ReceiptResponse, error) {
	receipt, err := s.receiptRepo.MarkSent(ctx, employeeID, month.String())
	if err != nil {
		return salary.ReceiptResponse{}, err
	}
	return salary.NewReceiptResponse(receipt), nil
}

func (s *SalaryServiceImpl) Payslip(ctx context.Context, employeeID string, month calendar.Month) (salary.PayslipData, error) {
	receipt, err := s.receiptRepo.GetByEmployeeMonth(ctx, employeeID, month.String())
	if err != nil {
		return salary.PayslipData{}, err
	}

	sheet, err := s.sheets.MonthlySheet(ctx, employeeID, month)
	if err != nil {
		return salary.PayslipData{}, fmt.Errorf("failed to build attendance sheet: %w", err)
	}

	return salary.PayslipData{Receipt: receipt, Sheet: sheet}, nil
}

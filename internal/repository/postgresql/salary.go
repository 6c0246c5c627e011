package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type receiptRepositoryImpl struct {
	db *database.DB
}

func NewReceiptRepository(db *database.DB) salary.ReceiptRepository {
	return &receiptRepositoryImpl{db: db}
}

const receiptColumns = `
	id, employee_id, employee_name, role, month, base_salary, total_days_in_month,
	late_arrival_count, full_leave, half_present_count, extra_leave, effective_leave,
	deduction, calculated_salary, confirmed, salary_sent, confirmed_at, created_at, updated_at`

func scanReceipt(row pgx.Row) (salary.Receipt, error) {
	var r salary.Receipt
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.EmployeeName, &r.Role, &r.Month, &r.BaseSalary, &r.TotalDaysInMonth,
		&r.LateArrivalCount, &r.FullLeave, &r.HalfPresentCount, &r.ExtraLeave, &r.EffectiveLeave,
		&r.Deduction, &r.CalculatedSalary, &r.Confirmed, &r.SalarySent, &r.ConfirmedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// Upsert implements salary.ReceiptRepository. A second confirmation for the
// same employee and month replaces the figures and resets salary_sent.
func (r *receiptRepositoryImpl) Upsert(ctx context.Context, receipt salary.Receipt) (salary.Receipt, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_receipts (
			employee_id, employee_name, role, month, base_salary, total_days_in_month,
			late_arrival_count, full_leave, half_present_count, extra_leave, effective_leave,
			deduction, calculated_salary, confirmed, salary_sent, confirmed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (employee_id, month) DO UPDATE SET
			employee_name = EXCLUDED.employee_name,
			role = EXCLUDED.role,
			base_salary = EXCLUDED.base_salary,
			total_days_in_month = EXCLUDED.total_days_in_month,
			late_arrival_count = EXCLUDED.late_arrival_count,
			full_leave = EXCLUDED.full_leave,
			half_present_count = EXCLUDED.half_present_count,
			extra_leave = EXCLUDED.extra_leave,
			effective_leave = EXCLUDED.effective_leave,
			deduction = EXCLUDED.deduction,
			calculated_salary = EXCLUDED.calculated_salary,
			confirmed = EXCLUDED.confirmed,
			salary_sent = EXCLUDED.salary_sent,
			confirmed_at = EXCLUDED.confirmed_at,
			updated_at = NOW()
		RETURNING ` + receiptColumns

	stored, err := scanReceipt(q.QueryRow(ctx, query,
		receipt.EmployeeID, receipt.EmployeeName, receipt.Role, receipt.Month, receipt.BaseSalary, receipt.TotalDaysInMonth,
		receipt.LateArrivalCount, receipt.FullLeave, receipt.HalfPresentCount, receipt.ExtraLeave, receipt.EffectiveLeave,
		receipt.Deduction, receipt.CalculatedSalary, receipt.Confirmed, receipt.SalarySent, receipt.ConfirmedAt,
	))
	if err != nil {
		return salary.Receipt{}, fmt.Errorf("failed to upsert salary receipt: %w", err)
	}
	return stored, nil
}

// GetByEmployeeMonth implements salary.ReceiptRepository.
func (r *receiptRepositoryImpl) GetByEmployeeMonth(ctx context.Context, employeeID string, month string) (salary.Receipt, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + receiptColumns + ` FROM salary_receipts WHERE employee_id = $1 AND month = $2`

	receipt, err := scanReceipt(q.QueryRow(ctx, query, employeeID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Receipt{}, salary.ErrReceiptNotFound
		}
		return salary.Receipt{}, fmt.Errorf("failed to get salary receipt: %w", err)
	}
	return receipt, nil
}

// ListByEmployee implements salary.ReceiptRepository. Newest month first.
func (r *receiptRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]salary.Receipt, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + receiptColumns + ` FROM salary_receipts WHERE employee_id = $1 ORDER BY month DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query salary receipts: %w", err)
	}
	defer rows.Close()

	var receipts []salary.Receipt
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary receipt: %w", err)
		}
		receipts = append(receipts, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating salary receipts: %w", err)
	}
	return receipts, nil
}

// MarkSent implements salary.ReceiptRepository.
func (r *receiptRepositoryImpl) MarkSent(ctx context.Context, employeeID string, month string) (salary.Receipt, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_receipts
		SET salary_sent = TRUE, updated_at = NOW()
		WHERE employee_id = $1 AND month = $2
		RETURNING ` + receiptColumns

	receipt, err := scanReceipt(q.QueryRow(ctx, query, employeeID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return salary.Receipt{}, salary.ErrReceiptNotFound
		}
		return salary.Receipt{}, fmt.Errorf("failed to mark salary sent: %w", err)
	}
	return receipt, nil
}

// Package export renders console data as xlsx workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/credential"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/salary"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	PayslipSheet     = "Payslip"
	AttendanceSheet  = "Attendance"
	CredentialsSheet = "Credentials"
)

// newWorkbook returns a file whose only sheet is name.
func newWorkbook(name string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", name); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func boldStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
}

// writeRow fills row (1-based) from column A.
func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func writeHeader(f *excelize.File, sheet string, row int, titles ...interface{}) error {
	if err := writeRow(f, sheet, row, titles...); err != nil {
		return err
	}
	style, err := boldStyle(f)
	if err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(titles), row)
	return f.SetCellStyle(sheet, first, last, style)
}

func writeDays(f *excelize.File, sheet string, startRow int, days []attendance.DailyRecord) error {
	if err := writeHeader(f, sheet, startRow, "Date", "Status", "Time In", "Late Arrival Approved"); err != nil {
		return err
	}
	for i, d := range days {
		if err := writeRow(f, sheet, startRow+1+i, d.Date, string(d.Status), d.TimeIn, d.LateArrivalApproved); err != nil {
			return err
		}
	}
	return nil
}

// PayslipWorkbook lays out a confirmed receipt followed by the month it was computed from.
func PayslipWorkbook(receipt salary.Receipt, sheet attendance.Sheet) (*excelize.File, error) {
	f, err := newWorkbook(PayslipSheet)
	if err != nil {
		return nil, err
	}

	rows := [][]interface{}{
		{"Employee", receipt.EmployeeName},
		{"Role", receipt.Role},
		{"Month", receipt.Month},
		{"Base Salary", receipt.BaseSalary.InexactFloat64()},
		{"Days In Month", receipt.TotalDaysInMonth},
		{"Full Leave", receipt.FullLeave},
		{"Half Present", receipt.HalfPresentCount},
		{"Late Arrivals", receipt.LateArrivalCount},
		{"Extra Leave", receipt.ExtraLeave},
		{"Effective Leave", receipt.EffectiveLeave.InexactFloat64()},
		{"Deduction", receipt.Deduction.InexactFloat64()},
		{"Salary", receipt.CalculatedSalary.InexactFloat64()},
	}
	for i, r := range rows {
		if err := writeRow(f, PayslipSheet, i+1, r...); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write payslip: %w", err)
		}
	}

	style, err := boldStyle(f)
	if err == nil {
		_ = f.SetCellStyle(PayslipSheet, "A1", fmt.Sprintf("A%d", len(rows)), style)
	}

	if err := writeDays(f, PayslipSheet, len(rows)+2, sheet.Days); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write payslip days: %w", err)
	}
	_ = f.SetColWidth(PayslipSheet, "A", "D", 22)

	return f, nil
}

// AttendanceWorkbook writes one row per day of the normalized month.
func AttendanceWorkbook(employeeName string, sheet attendance.Sheet) (*excelize.File, error) {
	f, err := newWorkbook(AttendanceSheet)
	if err != nil {
		return nil, err
	}

	if err := writeRow(f, AttendanceSheet, 1, employeeName, sheet.Month.String()); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeDays(f, AttendanceSheet, 3, sheet.Days); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write attendance: %w", err)
	}
	_ = f.SetColWidth(AttendanceSheet, "A", "D", 22)

	return f, nil
}

// CredentialsWorkbook writes opened credentials, one per row.
func CredentialsWorkbook(creds []credential.Credential) (*excelize.File, error) {
	f, err := newWorkbook(CredentialsSheet)
	if err != nil {
		return nil, err
	}

	err = writeHeader(f, CredentialsSheet, 1,
		"Employee Name", "Company Email", "Company Email Password",
		"Company Team Password", "Agent Name", "Laptop Password",
	)
	if err != nil {
		f.Close()
		return nil, err
	}
	for i, c := range creds {
		err := writeRow(f, CredentialsSheet, i+2,
			c.EmployeeName, c.CompanyEmail, c.CompanyEmailPassword,
			c.CompanyTeamPassword, c.AgentName, c.LaptopPassword,
		)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write credentials: %w", err)
		}
	}
	_ = f.SetColWidth(CredentialsSheet, "A", "F", 26)

	return f, nil
}

// Write streams f to w and closes it.
func Write(w io.Writer, f *excelize.File) error {
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

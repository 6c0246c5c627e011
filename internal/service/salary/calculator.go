package salary

import (
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

var halfDay = decimal.NewFromFloat(0.5)

// Calculate derives a draft receipt from a normalized month. It touches no
// store. Holidays are merged with the days the sheet itself marks as Holiday.
func Calculate(emp employee.Employee, sheet attendance.Sheet, holidays map[string]bool) (salary.Receipt, error) {
	if emp.IsSelf() {
		return salary.Receipt{}, salary.ErrNotApplicable
	}

	allHolidays := make(map[string]bool, len(holidays))
	for day, ok := range holidays {
		if ok {
			allHolidays[day] = true
		}
	}

	var (
		fullLeaveDays []string
		lateArrivals  int
		halfPresent   int
	)
	for _, d := range sheet.Days {
		switch d.Status {
		case attendance.StatusAbsent, attendance.StatusNoRecord:
			fullLeaveDays = append(fullLeaveDays, d.Date)
		case attendance.StatusLateArrival:
			if d.LateArrivalApproved != attendance.ApprovalYes {
				lateArrivals++
			}
		case attendance.StatusHalfPresent:
			halfPresent++
		case attendance.StatusHoliday:
			allHolidays[d.Date] = true
		}
	}

	fullLeave, err := SandwichLeave(fullLeaveDays, allHolidays)
	if err != nil {
		return salary.Receipt{}, err
	}
	extraLeave := ExtraLeaveForLateArrivals(lateArrivals)

	effective := decimal.NewFromInt(int64(fullLeave)).
		Add(decimal.NewFromInt(int64(halfPresent)).Mul(halfDay)).
		Add(decimal.NewFromInt(int64(extraLeave)))

	daysInMonth := sheet.Month.Days()
	deduction := decimal.Zero
	if !emp.IsRemote() && daysInMonth > 0 {
		deduction = emp.Salary.
			Div(decimal.NewFromInt(int64(daysInMonth))).
			Mul(effective).
			Round(2)
	}

	return salary.Receipt{
		EmployeeID:       emp.ID,
		EmployeeName:     emp.Name,
		Role:             emp.Role,
		Month:            sheet.Month.String(),
		BaseSalary:       emp.Salary,
		TotalDaysInMonth: daysInMonth,
		LateArrivalCount: lateArrivals,
		FullLeave:        fullLeave,
		HalfPresentCount: halfPresent,
		ExtraLeave:       extraLeave,
		EffectiveLeave:   effective,
		Deduction:        deduction,
		CalculatedSalary: emp.Salary.Sub(deduction).Round(2),
	}, nil
}

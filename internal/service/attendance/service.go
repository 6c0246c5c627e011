package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/database"
	"golang.org/x/sync/errgroup"
)

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	window         MarkingWindow
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	window MarkingWindow,
	loc *time.Location,
) *AttendanceServiceImpl {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		window:         window,
		loc:            loc,
		now:            time.Now,
	}
}

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)

// checkWindow rejects writes outside the marking window.
func (s *AttendanceServiceImpl) checkWindow() error {
	if !s.window.Contains(s.now().In(s.loc)) {
		return attendance.ErrOutsideMarkingWindow
	}
	return nil
}

// checkNotFuture rejects days after today in the console timezone.
func (s *AttendanceServiceImpl) checkNotFuture(day string) error {
	today := calendar.FormatDay(s.now().In(s.loc))
	if day > today {
		return attendance.ErrFutureDate
	}
	return nil
}

func (s *AttendanceServiceImpl) today() string {
	return calendar.FormatDay(s.now().In(s.loc))
}

// Mark implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	req.Normalize()

	if err := s.checkWindow(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if strings.TrimSpace(req.EmployeeID) == "" {
		return attendance.AttendanceResponse{}, attendance.ErrEmployeeNotSelected
	}

	day, err := calendar.NormalizeDateIn(req.Date, s.loc)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := s.checkNotFuture(day); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if strings.TrimSpace(emp.Name) == "" || strings.TrimSpace(emp.Role) == "" {
		return attendance.AttendanceResponse{}, attendance.ErrEmployeeNotSelected
	}

	exists, err := s.attendanceRepo.ExistsForEmployeeOnDay(ctx, emp.ID, day)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if exists {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceAlreadyMarked
	}

	record, err := s.newRecord(emp, day, attendance.Status(req.Status), req.TimeIn, req.LateArrivalApproved)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return mapRecordToResponse(created), nil
}

func (s *AttendanceServiceImpl) newRecord(emp employee.Employee, day string, status attendance.Status, timeIn, approved string) (attendance.Record, error) {
	usDate, err := calendar.FormatUSDay(day)
	if err != nil {
		return attendance.Record{}, err
	}
	return attendance.Record{
		EmployeeID:          emp.ID,
		Name:                emp.Name,
		Role:                emp.Role,
		Date:                usDate,
		Day:                 day,
		Status:              FinalizeStatus(day, status, timeIn, approved),
		TimeIn:              timeIn,
		LateArrivalApproved: approved,
	}, nil
}

// Update implements attendance.AttendanceService. Only status, time and
// approval change; the same finalization as Mark is re-applied.
func (s *AttendanceServiceImpl) Update(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	req.Normalize()

	if err := s.checkWindow(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Record
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.attendanceRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		day := existing.Day
		if day == "" {
			day, err = calendar.NormalizeDateIn(existing.Date, s.loc)
			if err != nil {
				return err
			}
		}
		if err := s.checkNotFuture(day); err != nil {
			return err
		}

		existing.Day = day
		existing.Status = FinalizeStatus(day, attendance.Status(req.Status), req.TimeIn, req.LateArrivalApproved)
		existing.TimeIn = req.TimeIn
		existing.LateArrivalApproved = req.LateArrivalApproved

		updated, err = s.attendanceRepo.Update(txCtx, existing)
		if err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapRecordToResponse(updated), nil
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	return s.attendanceRepo.Delete(ctx, id)
}

// MarkHolidayForAll implements attendance.AttendanceService. Each employee is
// written independently; a failure is reported and the run continues.
func (s *AttendanceServiceImpl) MarkHolidayForAll(ctx context.Context, req attendance.MarkHolidayRequest) (attendance.BulkMarkResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.BulkMarkResponse{}, err
	}
	if err := s.checkWindow(); err != nil {
		return attendance.BulkMarkResponse{}, err
	}

	day, err := calendar.NormalizeDateIn(req.Date, s.loc)
	if err != nil {
		return attendance.BulkMarkResponse{}, err
	}
	if err := s.checkNotFuture(day); err != nil {
		return attendance.BulkMarkResponse{}, err
	}

	eligible, err := s.unmarkedEmployees(ctx, day)
	if err != nil {
		return attendance.BulkMarkResponse{}, err
	}
	if len(eligible) == 0 {
		return attendance.BulkMarkResponse{}, attendance.ErrNothingToMark
	}

	timeIn := strings.TrimSpace(req.TimeIn)
	if timeIn == "" {
		timeIn = calendar.NoTime
	}

	resp := attendance.BulkMarkResponse{Date: day, Results: make([]attendance.BulkMarkResult, 0, len(eligible))}
	for _, emp := range eligible {
		result := attendance.BulkMarkResult{EmployeeID: emp.ID, Name: emp.Name}

		record, err := s.newRecord(emp, day, attendance.StatusHoliday, timeIn, attendance.ApprovalNone)
		if err == nil {
			record, err = s.attendanceRepo.Create(ctx, record)
		}
		if err != nil {
			slog.Error("MarkHolidayForAll create error", "employee_id", emp.ID, "day", day, "error", err)
			result.Error = err.Error()
			resp.Failed++
			resp.Results = append(resp.Results, result)
			continue
		}

		result.Marked = true
		result.Status = record.Status
		result.RecordID = record.ID
		resp.Marked++
		resp.Results = append(resp.Results, result)
	}

	return resp, nil
}

// unmarkedEmployees lists markable employees without any record on day.
func (s *AttendanceServiceImpl) unmarkedEmployees(ctx context.Context, day string) ([]employee.Employee, error) {
	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{MarkableOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	records, err := s.attendanceRepo.ListByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	marked := make(map[string]bool, len(records))
	for _, r := range records {
		marked[r.EmployeeID] = true
	}

	var unmarked []employee.Employee
	for _, emp := range employees {
		if !emp.Markable() || marked[emp.ID] {
			continue
		}
		unmarked = append(unmarked, emp)
	}
	return unmarked, nil
}

// List implements attendance.AttendanceService. Date defaults to today.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	day := s.today()
	if strings.TrimSpace(filter.Date) != "" {
		var err error
		day, err = calendar.NormalizeDateIn(filter.Date, s.loc)
		if err != nil {
			return nil, err
		}
	}

	records, err := s.attendanceRepo.ListByDay(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	name := strings.ToLower(strings.TrimSpace(filter.Name))
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		if name != "" && !strings.Contains(strings.ToLower(r.Name), name) {
			continue
		}
		if filter.Status != "" && string(r.Status) != filter.Status {
			continue
		}
		responses = append(responses, mapRecordToResponse(r))
	}
	return responses, nil
}

// ListUnmarked implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListUnmarked(ctx context.Context, date string) ([]attendance.UnmarkedEmployee, error) {
	day := s.today()
	if strings.TrimSpace(date) != "" {
		var err error
		day, err = calendar.NormalizeDateIn(date, s.loc)
		if err != nil {
			return nil, err
		}
	}

	employees, err := s.unmarkedEmployees(ctx, day)
	if err != nil {
		return nil, err
	}

	result := make([]attendance.UnmarkedEmployee, 0, len(employees))
	for _, emp := range employees {
		result = append(result, attendance.UnmarkedEmployee{EmployeeID: emp.ID, Name: emp.Name, Role: emp.Role})
	}
	return result, nil
}

// MonthlySheet implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthlySheet(ctx context.Context, employeeID string, month calendar.Month) (attendance.Sheet, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.Sheet{}, err
	}

	records, err := s.attendanceRepo.ListByEmployeeBetween(ctx, employeeID, month.FirstDay(), month.LastDay())
	if err != nil {
		return attendance.Sheet{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return NormalizeMonth(employeeID, records, month, s.loc), nil
}

// MonthlySummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MonthlySummary(ctx context.Context, month calendar.Month) (attendance.MonthlySummaryResponse, error) {
	var (
		employees []employee.Employee
		records   []attendance.Record
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		employees, err = s.employeeRepo.List(gCtx, employee.EmployeeFilter{})
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		records, err = s.attendanceRepo.ListBetween(gCtx, month.FirstDay(), month.LastDay())
		if err != nil {
			return fmt.Errorf("failed to list attendance: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}

	byEmployee := make(map[string][]attendance.Record)
	for _, r := range records {
		byEmployee[r.EmployeeID] = append(byEmployee[r.EmployeeID], r)
	}

	rows := make([]attendance.SummaryRow, 0, len(employees))
	for _, emp := range employees {
		if emp.IsSelf() {
			continue
		}
		sheet := NormalizeMonth(emp.ID, byEmployee[emp.ID], month, s.loc)
		rows = append(rows, summarize(emp, sheet))
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })

	return attendance.MonthlySummaryResponse{
		Month:       month.String(),
		WorkingDays: calendar.WorkingDays(month),
		Rows:        rows,
	}, nil
}

func summarize(emp employee.Employee, sheet attendance.Sheet) attendance.SummaryRow {
	row := attendance.SummaryRow{EmployeeID: emp.ID, Name: emp.Name, Role: emp.Role}
	for _, d := range sheet.Days {
		switch {
		case d.Status == attendance.StatusPresent || d.Status == attendance.StatusWorkFromHome:
			row.Present++
		case d.Status == attendance.StatusLateArrival:
			row.Present++
			row.LateArrival++
		case d.Status == attendance.StatusHalfPresent:
			row.Present++
			row.HalfPresent++
		case d.Status == attendance.StatusAbsent:
			row.Absent++
		case d.Status.IsLeave():
			row.Leave++
		case d.Status == attendance.StatusHoliday:
			row.Holiday++
		case d.Status == attendance.StatusOff:
			row.Off++
		case d.Status == attendance.StatusNoRecord:
			row.NoRecord++
		}
	}
	return row
}

func mapRecordToResponse(r attendance.Record) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                  r.ID,
		EmployeeID:          r.EmployeeID,
		Name:                r.Name,
		Role:                r.Role,
		Date:                r.Date,
		Day:                 r.Day,
		Status:              r.Status,
		TimeIn:              r.TimeIn,
		LateArrivalApproved: r.LateArrivalApproved,
		CreatedAt:           r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           r.UpdatedAt.Format(time.RFC3339),
	}
}

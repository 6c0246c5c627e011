package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/export"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/xuri/excelize/v2"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Mark(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListUnmarked(w http.ResponseWriter, r *http.Request)
	MarkHoliday(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
	Sheet(w http.ResponseWriter, r *http.Request)
	ExportSheet(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	employeeService   employee.EmployeeService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, employeeService employee.EmployeeService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		employeeService:   employeeService,
	}
}

// monthQuery reads the required ?month=YYYY-MM parameter.
func monthQuery(r *http.Request) (calendar.Month, error) {
	return calendar.ParseMonth(r.URL.Query().Get("month"))
}

// writeWorkbook streams an xlsx download.
func writeWorkbook(w http.ResponseWriter, filename string, build func() (*excelize.File, error)) {
	f, err := build()
	if err != nil {
		slog.Error("Workbook build error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.Write(w, f); err != nil {
		slog.Error("Workbook write error", "error", err)
	}
}

// List implements AttendanceHandler
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		Date:   r.URL.Query().Get("date"),
		Name:   r.URL.Query().Get("name"),
		Status: r.URL.Query().Get("status"),
	}

	results, err := h.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Mark implements AttendanceHandler
func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Mark decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Mark(r.Context(), req)
	if err != nil {
		slog.Error("Mark service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance marked successfully", result)
}

// Update implements AttendanceHandler
func (h *attendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Attendance ID is required", nil)
		return
	}

	var req attendance.UpdateAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("Update attendance service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance updated successfully", result)
}

// Delete implements AttendanceHandler
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Attendance ID is required", nil)
		return
	}

	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance deleted successfully", nil)
}

// ListUnmarked implements AttendanceHandler
func (h *attendanceHandlerImpl) ListUnmarked(w http.ResponseWriter, r *http.Request) {
	results, err := h.attendanceService.ListUnmarked(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// MarkHoliday implements AttendanceHandler. Partial failures still return 200
// with the per-employee outcome.
func (h *attendanceHandlerImpl) MarkHoliday(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.MarkHolidayForAll(r.Context(), req)
	if err != nil {
		slog.Error("MarkHoliday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	message := fmt.Sprintf("Holiday marked for %d employees", result.Marked)
	if result.Failed > 0 {
		message = fmt.Sprintf("Holiday marked for %d employees, %d failed", result.Marked, result.Failed)
	}
	response.SuccessWithMessage(w, message, result)
}

// Summary implements AttendanceHandler
func (h *attendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	month, err := monthQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.MonthlySummary(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) loadSheet(r *http.Request) (employee.EmployeeResponse, attendance.Sheet, error) {
	month, err := monthQuery(r)
	if err != nil {
		return employee.EmployeeResponse{}, attendance.Sheet{}, err
	}

	emp, err := h.employeeService.GetByID(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		return employee.EmployeeResponse{}, attendance.Sheet{}, err
	}

	sheet, err := h.attendanceService.MonthlySheet(r.Context(), emp.ID, month)
	if err != nil {
		return employee.EmployeeResponse{}, attendance.Sheet{}, err
	}
	return emp, sheet, nil
}

// Sheet implements AttendanceHandler
func (h *attendanceHandlerImpl) Sheet(w http.ResponseWriter, r *http.Request) {
	emp, sheet, err := h.loadSheet(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.SheetResponse{
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Role:       emp.Role,
		Month:      sheet.Month.String(),
		Days:       sheet.Days,
		Skipped:    sheet.Skipped,
	})
}

// ExportSheet implements AttendanceHandler
func (h *attendanceHandlerImpl) ExportSheet(w http.ResponseWriter, r *http.Request) {
	emp, sheet, err := h.loadSheet(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("attendance-%s-%s.xlsx", emp.Name, sheet.Month)
	writeWorkbook(w, filename, func() (*excelize.File, error) {
		return export.AttendanceWorkbook(emp.Name, sheet)
	})
}

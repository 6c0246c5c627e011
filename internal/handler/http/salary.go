package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/export"
	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"
)

type SalaryHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	GetReceipt(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	MarkSent(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
}

type salaryHandlerImpl struct {
	salaryService salary.SalaryService
}

func NewSalaryHandler(salaryService salary.SalaryService) SalaryHandler {
	return &salaryHandlerImpl{salaryService: salaryService}
}

// Calculate implements SalaryHandler. Nothing is stored.
func (h *salaryHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	month, err := monthQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.Calculate(r.Context(), chi.URLParam(r, "employeeID"), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Confirm implements SalaryHandler
func (h *salaryHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	month, err := monthQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.Confirm(r.Context(), chi.URLParam(r, "employeeID"), month)
	if err != nil {
		slog.Error("Confirm salary service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary confirmed successfully", result)
}

// GetReceipt implements SalaryHandler
func (h *salaryHandlerImpl) GetReceipt(w http.ResponseWriter, r *http.Request) {
	month, err := monthQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.GetReceipt(r.Context(), chi.URLParam(r, "employeeID"), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History implements SalaryHandler
func (h *salaryHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	results, err := h.salaryService.ListReceipts(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// MarkSent implements SalaryHandler
func (h *salaryHandlerImpl) MarkSent(w http.ResponseWriter, r *http.Request) {
	month, err := monthQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.salaryService.MarkSent(r.Context(), chi.URLParam(r, "employeeID"), month)
	if err != nil {
		slog.Error("MarkSent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary marked as sent", result)
}

// Payslip implements SalaryHandler
func (h *salaryHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	month, err := monthQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	data, err := h.salaryService.Payslip(r.Context(), chi.URLParam(r, "employeeID"), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("payslip-%s-%s.xlsx", data.Receipt.EmployeeName, data.Receipt.Month)
	writeWorkbook(w, filename, func() (*excelize.File, error) {
		return export.PayslipWorkbook(data.Receipt, data.Sheet)
	})
}

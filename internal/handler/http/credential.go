package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/credential"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/export"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/xuri/excelize/v2"
)

type CredentialHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Reveal(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type credentialHandlerImpl struct {
	credentialService credential.CredentialService
}

func NewCredentialHandler(credentialService credential.CredentialService) CredentialHandler {
	return &credentialHandlerImpl{credentialService: credentialService}
}

func (h *credentialHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.credentialService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, results)
}

func (h *credentialHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req credential.CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.credentialService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create credential service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Credential created successfully", result)
}

func (h *credentialHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Credential ID is required", nil)
		return
	}

	var req credential.CredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.credentialService.Update(r.Context(), id, req)
	if err != nil {
		slog.Error("Update credential service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Credential updated successfully", result)
}

func (h *credentialHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Credential ID is required", nil)
		return
	}

	if err := h.credentialService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Credential deleted successfully", nil)
}

// Reveal implements CredentialHandler. The security code is read from the body.
func (h *credentialHandlerImpl) Reveal(w http.ResponseWriter, r *http.Request) {
	var req credential.SecurityCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.credentialService.Reveal(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		slog.Warn("Reveal credential refused", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *credentialHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	var req credential.SecurityCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	creds, err := h.credentialService.Export(r.Context(), req)
	if err != nil {
		slog.Warn("Export credentials refused", "error", err)
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("credentials-%s.xlsx", time.Now().Format("2006-01-02"))
	writeWorkbook(w, filename, func() (*excelize.File, error) {
		return export.CredentialsWorkbook(creds)
	})
}

package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/credential"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/salary"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/jwt"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKE SERVICES =====

type fakeAuthService struct {
	loginErr error
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if f.loginErr != nil {
		return auth.TokenResponse{}, f.loginErr
	}
	return auth.TokenResponse{
		AccessToken:           "access",
		AccessTokenExpiresIn:  time.Now().Add(time.Hour).Unix(),
		RefreshToken:          "refresh",
		RefreshTokenExpiresIn: time.Now().Add(24 * time.Hour).Unix(),
		Role:                  string(user.RoleAdmin),
	}, nil
}

func (f *fakeAuthService) LoginWithGoogle(ctx context.Context, email string, googleID string, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrGoogleAccountNotRegistered
}

func (f *fakeAuthService) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest, sessionReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
}

func (f *fakeAuthService) Logout(ctx context.Context, refreshToken string) error {
	return nil
}

func (f *fakeAuthService) Me(ctx context.Context, userID string) (user.UserResponse, error) {
	return user.UserResponse{ID: userID, Role: user.RoleAdmin}, nil
}

type fakeEmployeeService struct{}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{ID: "emp-new", Name: req.Name, Role: req.Role}, nil
}

func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if id != "emp-a" {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	return employee.EmployeeResponse{ID: "emp-a", Name: "Asha", Role: "Developer"}, nil
}

func (f *fakeEmployeeService) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	return []employee.EmployeeResponse{{ID: "emp-a", Name: "Asha"}}, nil
}

func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return employee.EmployeeResponse{ID: id}, nil
}

func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeAttendanceService struct {
	markErr error
}

func (f *fakeAttendanceService) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if f.markErr != nil {
		return attendance.AttendanceResponse{}, f.markErr
	}
	return attendance.AttendanceResponse{ID: "rec-1", EmployeeID: req.EmployeeID, Status: attendance.Status(req.Status)}, nil
}

func (f *fakeAttendanceService) Update(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{ID: id}, nil
}

func (f *fakeAttendanceService) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakeAttendanceService) MarkHolidayForAll(ctx context.Context, req attendance.MarkHolidayRequest) (attendance.BulkMarkResponse, error) {
	return attendance.BulkMarkResponse{Date: "2024-06-07", Marked: 2, Failed: 1}, nil
}

func (f *fakeAttendanceService) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	return []attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) ListUnmarked(ctx context.Context, date string) ([]attendance.UnmarkedEmployee, error) {
	return []attendance.UnmarkedEmployee{}, nil
}

func (f *fakeAttendanceService) MonthlySheet(ctx context.Context, employeeID string, month calendar.Month) (attendance.Sheet, error) {
	return attendance.Sheet{
		EmployeeID: employeeID,
		Month:      month,
		Days: []attendance.DailyRecord{
			{Date: month.FirstDay(), Status: attendance.StatusOff, TimeIn: "-", LateArrivalApproved: "-", Synthetic: true},
		},
	}, nil
}

func (f *fakeAttendanceService) MonthlySummary(ctx context.Context, month calendar.Month) (attendance.MonthlySummaryResponse, error) {
	return attendance.MonthlySummaryResponse{Month: month.String()}, nil
}

type fakeSalaryService struct{}

func (f *fakeSalaryService) Calculate(ctx context.Context, employeeID string, month calendar.Month) (salary.ReceiptResponse, error) {
	if employeeID == "emp-owner" {
		return salary.ReceiptResponse{}, salary.ErrNotApplicable
	}
	return salary.ReceiptResponse{}, nil
}

func (f *fakeSalaryService) Confirm(ctx context.Context, employeeID string, month calendar.Month) (salary.ReceiptResponse, error) {
	return salary.ReceiptResponse{}, nil
}

func (f *fakeSalaryService) GetReceipt(ctx context.Context, employeeID string, month calendar.Month) (salary.ReceiptResponse, error) {
	return salary.ReceiptResponse{}, salary.ErrReceiptNotFound
}

func (f *fakeSalaryService) ListReceipts(ctx context.Context, employeeID string) ([]salary.ReceiptResponse, error) {
	return []salary.ReceiptResponse{}, nil
}

func (f *fakeSalaryService) MarkSent(ctx context.Context, employeeID string, month calendar.Month) (salary.ReceiptResponse, error) {
	return salary.ReceiptResponse{}, nil
}

func (f *fakeSalaryService) Payslip(ctx context.Context, employeeID string, month calendar.Month) (salary.PayslipData, error) {
	return salary.PayslipData{
		Receipt: salary.Receipt{
			EmployeeName:     "Asha",
			Month:            month.String(),
			BaseSalary:       decimal.NewFromInt(30000),
			EffectiveLeave:   decimal.Zero,
			Deduction:        decimal.Zero,
			CalculatedSalary: decimal.NewFromInt(30000),
		},
		Sheet: attendance.Sheet{Month: month},
	}, nil
}

type fakeCredentialService struct{}

func (f *fakeCredentialService) List(ctx context.Context) ([]credential.CredentialSummary, error) {
	return []credential.CredentialSummary{}, nil
}

func (f *fakeCredentialService) Create(ctx context.Context, req credential.CredentialRequest) (credential.CredentialSummary, error) {
	if err := req.Validate(); err != nil {
		return credential.CredentialSummary{}, err
	}
	return credential.CredentialSummary{ID: "cred-1"}, nil
}

func (f *fakeCredentialService) Update(ctx context.Context, id string, req credential.CredentialRequest) (credential.CredentialSummary, error) {
	return credential.CredentialSummary{ID: id}, nil
}

func (f *fakeCredentialService) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakeCredentialService) Reveal(ctx context.Context, id string, req credential.SecurityCodeRequest) (credential.CredentialDetail, error) {
	if req.SecurityCode != "4321" {
		return credential.CredentialDetail{}, credential.ErrInvalidSecurityCode
	}
	return credential.CredentialDetail{ID: id, LaptopPassword: "open"}, nil
}

func (f *fakeCredentialService) Export(ctx context.Context, req credential.SecurityCodeRequest) ([]credential.Credential, error) {
	if req.SecurityCode != "4321" {
		return nil, credential.ErrInvalidSecurityCode
	}
	return []credential.Credential{{EmployeeName: "Asha"}}, nil
}

// ===== HELPERS =====

type testServer struct {
	handler    http.Handler
	jwtService *jwt.JWTService
	attendance *fakeAttendanceService
	auth       *fakeAuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	jwtService := jwt.NewJWTService("router-test-secret", time.Hour, 24*time.Hour, false)
	attendanceSvc := &fakeAttendanceService{}
	authSvc := &fakeAuthService{}
	employeeSvc := &fakeEmployeeService{}

	handlers := Handlers{
		Auth:       NewAuthHandler(jwtService, authSvc, nil, "http://localhost:3000", false),
		Employee:   NewEmployeeHandler(employeeSvc),
		Attendance: NewAttendanceHandler(attendanceSvc, employeeSvc),
		Salary:     NewSalaryHandler(&fakeSalaryService{}),
		Credential: NewCredentialHandler(&fakeCredentialService{}),
	}

	return &testServer{
		handler:    NewRouter(RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}}, jwtService, handlers),
		jwtService: jwtService,
		attendance: attendanceSvc,
		auth:       authSvc,
	}
}

func (s *testServer) token(t *testing.T, role user.Role) string {
	t.Helper()
	token, _, err := s.jwtService.GenerateAccessToken("user-1", "someone@example.com", role)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// ===== TESTS =====

func TestRouter_RequiresAuthentication(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/v1/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/employees", s.token(t, user.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AttendanceOperatorScope(t *testing.T) {
	s := newTestServer(t)
	operator := s.token(t, user.RoleAttendance)

	rec := s.do(http.MethodPost, "/api/v1/attendance", operator, attendance.MarkAttendanceRequest{
		EmployeeID: "emp-a", Date: "6/7/2024", Status: "Present", TimeIn: "17:05",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/attendance/summary?month=2024-06", operator, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodDelete, "/api/v1/attendance/rec-1", operator, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/v1/salaries/emp-a/calculate?month=2024-06", operator, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/v1/credentials", operator, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/v1/employees", operator, nil).Code)
}

func TestAttendanceHandler_MarkRejections(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, user.RoleAdmin)

	s.attendance.markErr = attendance.ErrOutsideMarkingWindow
	rec := s.do(http.MethodPost, "/api/v1/attendance", admin, attendance.MarkAttendanceRequest{EmployeeID: "emp-a"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s.attendance.markErr = attendance.ErrAttendanceAlreadyMarked
	rec = s.do(http.MethodPost, "/api/v1/attendance", admin, attendance.MarkAttendanceRequest{EmployeeID: "emp-a"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/attendance", admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttendanceHandler_MarkHolidayReportsFailures(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/v1/attendance/holiday", s.token(t, user.RoleAttendance), attendance.MarkHolidayRequest{Date: "2024-06-07"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Holiday marked for 2 employees, 1 failed", body.Message)
}

func TestAttendanceHandler_Sheet(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, user.RoleAdmin)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/attendance/sheet/emp-a", admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/attendance/sheet/emp-x?month=2024-06", admin, nil).Code)

	rec := s.do(http.MethodGet, "/api/v1/attendance/sheet/emp-a?month=2024-06", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data attendance.SheetResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Asha", body.Data.Name)
	assert.Equal(t, "2024-06", body.Data.Month)
	require.Len(t, body.Data.Days, 1)

	rec = s.do(http.MethodGet, "/api/v1/attendance/sheet/emp-a/export?month=2024-06", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestSalaryHandler(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, user.RoleAdmin)

	rec := s.do(http.MethodPost, "/api/v1/salaries/emp-owner/calculate?month=2024-06", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var notApplicable struct {
		Data response.NotApplicableResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &notApplicable))
	assert.False(t, notApplicable.Data.Applicable)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/v1/salaries/emp-a/calculate?month=June", admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/salaries/emp-a?month=2024-06", admin, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/salaries/emp-a/confirm?month=2024-06", admin, nil).Code)

	rec = s.do(http.MethodGet, "/api/v1/salaries/emp-a/payslip?month=2024-06", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payslip-Asha-2024-06.xlsx")
}

func TestCredentialHandler(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, user.RoleAdmin)

	rec := s.do(http.MethodPost, "/api/v1/credentials", admin, credential.CredentialRequest{EmployeeName: "Asha"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/credentials/cred-1/reveal", admin, credential.SecurityCodeRequest{SecurityCode: "0000"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/credentials/cred-1/reveal", admin, credential.SecurityCodeRequest{SecurityCode: "4321"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/credentials/export", admin, credential.SecurityCodeRequest{SecurityCode: "4321"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get("Content-Type"))
}

func TestAuthHandler_LoginSetsRefreshCookie(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "admin@example.com", Password: "password123"})
	require.Equal(t, http.StatusCreated, rec.Code)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, jwt.RefreshTokenCookieName, cookies[0].Name)
	assert.Equal(t, "refresh", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	s.auth.loginErr = auth.ErrInvalidCredentials
	rec = s.do(http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "admin@example.com", Password: "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_LogoutRevokesAccessToken(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, user.RoleAdmin)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.AddCookie(&http.Cookie{Name: jwt.RefreshTokenCookieName, Value: "refresh"})
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/auth/me", token, nil).Code)
}

func TestAuthHandler_GoogleDisabled(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/v1/auth/login/google", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package http

import (
	"io"
	"log/slog"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
}

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Salary     SalaryHandler
	Credential CredentialHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  opts.LogLevel,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/login/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)
			r.With(
				jwtauth.Verifier(JWTService.JWTAuth()),
				middleware.AuthRequired(JWTService),
			).Get("/me", h.Auth.Me)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEmployeeView)).Get("/", h.Employee.ListEmployees)
				r.With(middleware.RequirePermission(user.PermissionEmployeeView)).Get("/{id}", h.Employee.GetEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeleteEmployee)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceView))
					r.Get("/", h.Attendance.List)
					r.Get("/unmarked", h.Attendance.ListUnmarked)
					r.Get("/summary", h.Attendance.Summary)
					r.Get("/sheet/{employeeID}", h.Attendance.Sheet)
					r.Get("/sheet/{employeeID}/export", h.Attendance.ExportSheet)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceMark))
					r.Post("/", h.Attendance.Mark)
					r.Put("/{id}", h.Attendance.Update)
					r.Post("/holiday", h.Attendance.MarkHoliday)
				})

				r.With(middleware.RequirePermission(user.PermissionAttendanceDelete)).Delete("/{id}", h.Attendance.Delete)
			})

			r.Route("/salaries/{employeeID}", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSalaryView))
					r.Post("/calculate", h.Salary.Calculate)
					r.Get("/", h.Salary.GetReceipt)
					r.Get("/history", h.Salary.History)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionSalaryManage))
					r.Post("/confirm", h.Salary.Confirm)
					r.Post("/sent", h.Salary.MarkSent)
				})

				r.With(middleware.RequirePermission(user.PermissionSalaryPayslip)).Get("/payslip", h.Salary.Payslip)
			})

			r.Route("/credentials", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.With(middleware.RequirePermission(user.PermissionCredentialView)).Get("/", h.Credential.List)
				r.With(middleware.RequirePermission(user.PermissionCredentialView)).Post("/{id}/reveal", h.Credential.Reveal)
				r.With(middleware.RequirePermission(user.PermissionCredentialView)).Post("/export", h.Credential.Export)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionCredentialManage))
					r.Post("/", h.Credential.Create)
					r.Put("/{id}", h.Credential.Update)
					r.Delete("/{id}", h.Credential.Delete)
				})
			})
		})
	})
	return r
}

// NewLogger builds the JSON slog logger used for both application and request logs.
func NewLogger(w io.Writer, level slog.Level, env string) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-console"),
		slog.String("env", env),
	)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hr-console-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/oauth"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/vault"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hr-console-backend-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/hr-console-backend-go/internal/service/auth"
	credentialService "github.com/cmlabs-hris/hr-console-backend-go/internal/service/credential"
	employeeService "github.com/cmlabs-hris/hr-console-backend-go/internal/service/employee"
	salaryService "github.com/cmlabs-hris/hr-console-backend-go/internal/service/salary"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.SlogLevel(), cfg.App.Env)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	window, err := attendanceService.ParseMarkingWindow(cfg.Attendance.Window)
	if err != nil {
		return err
	}
	box, err := vault.New(cfg.Credentials.Key)
	if err != nil {
		return fmt.Errorf("invalid CREDENTIALS_KEY: %w", err)
	}

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	receiptRepo := postgresql.NewReceiptRepository(db)
	credentialRepo := postgresql.NewCredentialRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration, cfg.IsProduction())

	var googleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		googleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL)
	}

	authService := serviceAuth.NewAuthService(tx, userRepo, JWTRepository, JWTService, cfg.Attendance.UserEmail)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(tx, attendanceRepo, employeeRepo, window, cfg.App.Location)
	salarySvc := salaryService.NewSalaryService(employeeRepo, receiptRepo, attendanceSvc, cfg.Attendance.Holidays)
	credentialSvc := credentialService.NewCredentialService(credentialRepo, box, cfg.Credentials.SecurityCode)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			LogLevel:       cfg.SlogLevel(),
			AllowedOrigins: cfg.App.AllowedOrigins,
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(JWTService, authService, googleService, cfg.App.FrontendURL, cfg.IsProduction()),
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, employeeSvc),
			Salary:     appHTTP.NewSalaryHandler(salarySvc),
			Credential: appHTTP.NewCredentialHandler(credentialSvc),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// Command migrate applies pending schema migrations and creates the console
// accounts named in the SEED_* variables when they do not exist yet.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/config"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hr-console-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/hr-console-backend-go/internal/service/auth"
	"github.com/cmlabs-hris/hr-console-backend-go/migrations"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("migrate failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: 2, MinConns: 1})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	applied, err := database.Migrate(ctx, db, migrations.FS)
	if err != nil {
		return err
	}
	slog.Info("migrations applied", "count", len(applied), "versions", applied)

	userRepo := postgresql.NewUserRepository(db)
	seeds := []struct {
		email    string
		password string
	}{
		{cfg.Seed.AdminEmail, cfg.Seed.AdminPassword},
		{cfg.Attendance.UserEmail, cfg.Seed.AttendancePassword},
	}
	for _, s := range seeds {
		if s.email == "" || s.password == "" {
			continue
		}
		if err := seedUser(ctx, userRepo, s.email, s.password); err != nil {
			return err
		}
	}
	return nil
}

func seedUser(ctx context.Context, userRepo user.UserRepository, email, password string) error {
	hash, err := serviceAuth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password for %s: %w", email, err)
	}

	_, err = userRepo.Create(ctx, user.User{Email: email, PasswordHash: &hash})
	if errors.Is(err, user.ErrUserEmailExists) {
		slog.Info("user already exists", "email", email)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to seed %s: %w", email, err)
	}
	slog.Info("user created", "email", email)
	return nil
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-console-backend-go/internal/pkg/calendar"
	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	Attendance   AttendanceConfig
	Credentials  CredentialsConfig
	OAuth2Google OAuth2GoogleConfig
	Seed         SeedConfig
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	AccessExpiration  time.Duration
	RefreshExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	FrontendURL    string
	AllowedOrigins []string
	Timezone       string
	Location       *time.Location
}

// AttendanceConfig drives marking and salary rules.
type AttendanceConfig struct {
	// Window is an hour-range list such as "17-24,0-3".
	Window string
	// UserEmail identifies the attendance operator account.
	UserEmail string
	// Holidays are company holidays as "YYYY-MM-DD".
	Holidays []string
}

type CredentialsConfig struct {
	SecurityCode string
	// Key is the 32-byte vault key, hex or base64.
	Key string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether Google sign-in is configured.
func (c OAuth2GoogleConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RedirectURL != ""
}

// SeedConfig lists the accounts cmd/migrate creates when missing.
type SeedConfig struct {
	AdminEmail         string
	AdminPassword      string
	AttendancePassword string
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	} else if err != nil {
		slog.Info("no .env file found, using process environment")
	}
	return FromEnv()
}

// FromEnv builds and validates the configuration from environment variables.
func FromEnv() (*Config, error) {
	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "25"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}
	connLifetime, err := time.ParseDuration(getEnv("DB_MAX_CONN_LIFETIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONN_LIFETIME: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            dbPort,
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		Name:            getEnv("DB_NAME", "hr-console"),
		SSLMode:         getEnv("DB_SSL_MODE", "disable"),
		MaxConns:        int32(maxConns),
		MinConns:        int32(minConns),
		MaxConnLifetime: connLifetime,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	timezone := getEnv("APP_TIMEZONE", "Asia/Kolkata")
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS"),
		Timezone:       timezone,
		Location:       loc,
	}
	if len(config.App.AllowedOrigins) == 0 {
		config.App.AllowedOrigins = []string{config.App.FrontendURL}
	}

	// JWT configuration
	accessExpiration, err := time.ParseDuration(getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	refreshExpiration, err := time.ParseDuration(getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRATION_TIME: %w", err)
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration:  accessExpiration,
		RefreshExpiration: refreshExpiration,
	}

	config.Attendance = AttendanceConfig{
		Window:    getEnv("ATTENDANCE_WINDOW", "17-24,0-3"),
		UserEmail: getEnv("ATTENDANCE_USER_EMAIL", ""),
		Holidays:  getEnvSlice("HOLIDAYS"),
	}

	config.Credentials = CredentialsConfig{
		SecurityCode: getEnv("CREDENTIALS_SECURITY_CODE", ""),
		Key:          getEnv("CREDENTIALS_KEY", ""),
	}

	// OAuth2 Google Configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
	}

	config.Seed = SeedConfig{
		AdminEmail:         getEnv("SEED_ADMIN_EMAIL", ""),
		AdminPassword:      getEnv("SEED_ADMIN_PASSWORD", ""),
		AttendancePassword: getEnv("SEED_ATTENDANCE_PASSWORD", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.AccessExpiration <= 0 || c.JWT.RefreshExpiration <= 0 {
		return fmt.Errorf("JWT expiration times must be positive")
	}
	if c.Credentials.SecurityCode == "" {
		return fmt.Errorf("CREDENTIALS_SECURITY_CODE is required")
	}
	if c.Credentials.Key == "" {
		return fmt.Errorf("CREDENTIALS_KEY is required")
	}
	for _, h := range c.Attendance.Holidays {
		if _, err := calendar.ParseDay(h); err != nil {
			return fmt.Errorf("invalid HOLIDAYS entry %q", h)
		}
	}

	// Google sign-in is optional but must be complete when started
	g := c.OAuth2Google
	if (g.ClientID != "" || g.ClientSecret != "" || g.RedirectURL != "") && !g.Enabled() {
		return fmt.Errorf("GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URL must be set together")
	}
	return nil
}

// IsProduction reports whether cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

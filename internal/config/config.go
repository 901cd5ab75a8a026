// Package config loads process configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config is the full process configuration.
type Config struct {
	Env      string `validate:"required,oneof=development production test"`
	Port     string `validate:"required,numeric"`
	LogLevel string `validate:"required,oneof=debug info warn error"`

	StorageDriver string `validate:"required,oneof=memory postgres"`
	DatabaseURL   string `validate:"required_if=StorageDriver postgres"`
	DBMaxConns    int    `validate:"gte=1,lte=500"`

	JWTSecret         string        `validate:"required,min=16"`
	JWTTTL            time.Duration `validate:"gte=1m"`
	AdminUsername     string        `validate:"required"`
	AdminPasswordHash string

	SMTP SMTPConfig

	MetricsEnabled bool
	AuditEnabled   bool
}

// SMTPConfig holds mail delivery settings. An empty Host disables delivery.
type SMTPConfig struct {
	Host     string
	Port     int    `validate:"required_with=Host,omitempty,gte=1,lte=65535"`
	User     string
	Password string
	From     string `validate:"required_with=Host,omitempty,email"`
	TLSMode  string `validate:"omitempty,oneof=auto ssl none"`
}

// IsDevelopment reports whether the process runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

var validate = validator.New()

// Load reads envFiles (missing files are skipped) and then the environment.
// Values already present in the environment win over file values.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		Port:     getEnv("APP_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StorageDriver: getEnv("STORAGE_DRIVER", DriverMemory),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DBMaxConns:    getEnvInt("DB_MAX_CONNS", 10),

		JWTSecret:         getEnv("JWT_SECRET", ""),
		JWTTTL:            getEnvDuration("JWT_TTL", 15*time.Minute),
		AdminUsername:     getEnv("ADMIN_USERNAME", "admin"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     getEnv("SMTP_USER", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
			TLSMode:  getEnv("SMTP_TLS_MODE", "auto"),
		},

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
		AuditEnabled:   getEnvBool("AUDIT_ENABLED", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.Atoi(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if result, err := strconv.ParseBool(value); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

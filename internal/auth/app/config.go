package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/service"
	"github.com/aussiebroadwan/hdnotes/pkg/jwtx"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverRedis    = "redis"
)

// Mail drivers.
const (
	MailLog  = "log"
	MailSMTP = "smtp"
)

// MinSecretLength is the shortest AUTH_SESSION_SECRET accepted.
const MinSecretLength = 32

type Config struct {
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired credential reaper interval (default: 10m)

	Issuer                 string        // Issuer claim for session tokens (default: hdnotes-auth)
	SessionSecret          string        // Master secret the HS256 key is derived from. Required outside dev
	SessionKeyID           string        // kid of the active key (default: session-1)
	SessionPreviousSecrets string        // Optional: "kid=secret,..." still accepted for verification
	SessionTTL             time.Duration // Session token lifetime (default: 168h)
	OTPTTL                 time.Duration // One-time code lifetime (default: 10m)

	StoreDriver     string // sqlite, postgres or mongo (default: sqlite)
	DatabaseFile    string // SQLite database file (default: ./auth.db)
	DatabaseURL     string // Postgres connection string
	MongoURI        string // Mongo connection string
	MongoDatabase   string // Mongo database name (default: hdnotes)
	CredentialStore string // Optional: "redis" keeps pending codes in Redis
	RedisURL        string // Redis connection URL (default: redis://localhost:6379/0)

	MailDriver   string // log or smtp (default: log in dev, smtp elsewhere)
	SMTPHost     string
	SMTPPort     int // (default: 587)
	SMTPUsername string
	SMTPPassword string
	SMTPTLS      string // mandatory, opportunistic or none (default: mandatory)
	MailFrom     string // (default: no-reply@localhost)
	MailAppName  string // (default: HD App)
}

func LoadConfig() Config {
	env := getEnvOrDefault("ENV", "dev")

	defaultMail := MailSMTP
	if env == "dev" {
		defaultMail = MailLog
	}

	return Config{
		Env:                  env,
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 10*time.Minute),

		Issuer:                 getEnvOrDefault("AUTH_ISSUER", "hdnotes-auth"),
		SessionSecret:          os.Getenv("AUTH_SESSION_SECRET"),
		SessionKeyID:           getEnvOrDefault("AUTH_SESSION_KEY_ID", "session-1"),
		SessionPreviousSecrets: os.Getenv("AUTH_SESSION_PREVIOUS_SECRETS"),
		SessionTTL:             getEnvDurationOrDefault("AUTH_SESSION_TTL", jwtx.DefaultSessionTTL),
		OTPTTL:                 getEnvDurationOrDefault("AUTH_OTP_TTL", service.DefaultOTPTTL),

		StoreDriver:     getEnvOrDefault("STORE_DRIVER", DriverSQLite),
		DatabaseFile:    getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDatabase:   getEnvOrDefault("MONGO_DATABASE", "hdnotes"),
		CredentialStore: os.Getenv("CREDENTIAL_STORE"),
		RedisURL:        getEnvOrDefault("REDIS_URL", "redis://localhost:6379/0"),

		MailDriver:   getEnvOrDefault("MAIL_DRIVER", defaultMail),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvIntOrDefault("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPTLS:      getEnvOrDefault("SMTP_TLS", "mandatory"),
		MailFrom:     getEnvOrDefault("MAIL_FROM", "no-reply@localhost"),
		MailAppName:  getEnvOrDefault("MAIL_APP_NAME", "HD App"),
	}
}

// Validate rejects configurations the service cannot start with.
func (c Config) Validate() error {
	var errs []error

	switch {
	case c.SessionSecret == "" && c.Env != "dev":
		errs = append(errs, errors.New("AUTH_SESSION_SECRET is required outside dev"))
	case c.SessionSecret != "" && len(c.SessionSecret) < MinSecretLength:
		errs = append(errs, fmt.Errorf("AUTH_SESSION_SECRET must be at least %d bytes", MinSecretLength))
	}
	if c.SessionKeyID == "" {
		errs = append(errs, errors.New("AUTH_SESSION_KEY_ID must not be empty"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("AUTH_SESSION_TTL must be positive"))
	}
	if c.OTPTTL <= 0 {
		errs = append(errs, errors.New("AUTH_OTP_TTL must be positive"))
	}

	switch c.StoreDriver {
	case DriverSQLite:
		if c.DatabaseFile == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_FILE must not be empty"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case DriverMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.CredentialStore {
	case "", c.StoreDriver:
	case DriverRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis credential store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CREDENTIAL_STORE %q", c.CredentialStore))
	}

	switch c.MailDriver {
	case MailLog:
	case MailSMTP:
		if c.SMTPHost == "" {
			errs = append(errs, errors.New("SMTP_HOST is required for the smtp mail driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_DRIVER %q", c.MailDriver))
	}

	return errors.Join(errs...)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "")
	t.Setenv("MAIL_DRIVER", "")
	t.Setenv("STORE_DRIVER", "")

	cfg := LoadConfig()
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, DriverSQLite, cfg.StoreDriver)
	require.Equal(t, MailLog, cfg.MailDriver)
	require.Equal(t, 10*time.Minute, cfg.OTPTTL)
	require.Equal(t, 7*24*time.Hour, cfg.SessionTTL)
	require.Equal(t, "session-1", cfg.SessionKeyID)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("AUTH_OTP_TTL", "5")
	t.Setenv("AUTH_SESSION_TTL", "24h")
	t.Setenv("SMTP_PORT", "not-a-number")
	t.Setenv("MAIL_DRIVER", "")

	cfg := LoadConfig()
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 5*time.Minute, cfg.OTPTTL)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 587, cfg.SMTPPort)
	require.Equal(t, MailSMTP, cfg.MailDriver)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Env:          "prod",
			SessionKeyID: "session-1",
			SessionTTL:   time.Hour,
			OTPTTL:       time.Minute,
			StoreDriver:  DriverSQLite,
			DatabaseFile: "auth.db",
			MailDriver:   MailSMTP,
			SMTPHost:     "smtp.example.com",

			SessionSecret: testSecret,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing secret outside dev", func(c *Config) { c.SessionSecret = "" }, "AUTH_SESSION_SECRET is required"},
		{"missing secret in dev", func(c *Config) { c.SessionSecret = ""; c.Env = "dev" }, ""},
		{"short secret", func(c *Config) { c.SessionSecret = "short" }, "at least 32 bytes"},
		{"zero otp ttl", func(c *Config) { c.OTPTTL = 0 }, "AUTH_OTP_TTL"},
		{"postgres without url", func(c *Config) { c.StoreDriver = DriverPostgres }, "DATABASE_URL"},
		{"mongo without uri", func(c *Config) { c.StoreDriver = DriverMongo }, "MONGO_URI"},
		{"unknown store", func(c *Config) { c.StoreDriver = "dynamo" }, "unknown STORE_DRIVER"},
		{"redis credentials", func(c *Config) { c.CredentialStore = DriverRedis; c.RedisURL = "redis://localhost:6379" }, ""},
		{"redis without url", func(c *Config) { c.CredentialStore = DriverRedis }, "REDIS_URL"},
		{"unknown credential store", func(c *Config) { c.CredentialStore = "memcached" }, "unknown CREDENTIAL_STORE"},
		{"smtp without host", func(c *Config) { c.SMTPHost = "" }, "SMTP_HOST"},
		{"unknown mail driver", func(c *Config) { c.MailDriver = "pigeon" }, "unknown MAIL_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

package app

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/hdnotes/pkg/authsdk"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Env:                  "dev",
		LogLevel:             "error",
		ShutdownGracePeriod:  5 * time.Second,
		HousekeepingInterval: time.Hour,
		Issuer:               "hdnotes-test",
		SessionSecret:        testSecret,
		SessionKeyID:         "k1",
		SessionTTL:           time.Hour,
		OTPTTL:               10 * time.Minute,
		StoreDriver:          DriverSQLite,
		DatabaseFile:         filepath.Join(t.TempDir(), "auth.db"),
		MailDriver:           MailLog,
		MailFrom:             "no-reply@example.com",
		MailAppName:          "HD App",
	}
}

func startApp(t *testing.T, cfg Config) (*Application, *authsdk.SDKClient) {
	t.Helper()

	application, err := New(cfg)
	require.NoError(t, err)
	application.housekeepingService.Start()

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		require.NoError(t, application.Shutdown())
	})
	return application, authsdk.NewSDKClient(srv.URL)
}

func TestNewServesHealth(t *testing.T) {
	_, client := startApp(t, testConfig(t))
	ctx := context.Background()

	live, err := client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, BuildVersion, live.Version)

	ready, err := client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)

	res, err := client.CheckUser(ctx, "nobody@example.com")
	require.NoError(t, err)
	require.False(t, res.Exists)
}

func TestNewRedisCredentials(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(t)
	cfg.CredentialStore = DriverRedis
	cfg.RedisURL = "redis://" + mr.Addr() + "/0"

	application, client := startApp(t, cfg)
	require.NotNil(t, application.rdb)

	_, err := client.IssueOTP(context.Background(), authsdk.IssueOTPRequest{
		Email:   "ada@example.com",
		Name:    "Ada",
		Purpose: "signup",
	})
	require.NoError(t, err)
	require.True(t, mr.Exists("otp:ada@example.com"))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreDriver = "dynamo"

	_, err := New(cfg)
	require.ErrorContains(t, err, "invalid configuration")
}

func TestNewFailsWhenRedisIsUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(t)
	cfg.CredentialStore = DriverRedis
	cfg.RedisURL = "redis://" + addr

	_, err := New(cfg)
	require.ErrorContains(t, err, "redis")
}

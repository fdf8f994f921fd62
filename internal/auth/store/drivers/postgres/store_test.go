package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store/drivers/postgres"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store/storetest"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres runs a throwaway Postgres and returns its connection URL.
func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "hdnotes",
			"POSTGRES_PASSWORD": "hdnotes",
			"POSTGRES_DB":       "hdnotes",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://hdnotes:hdnotes@%s:%s/hdnotes?sslmode=disable", host, port.Port())
}

func TestStoreContract(t *testing.T) {
	url := startPostgres(t)
	ctx := context.Background()

	s, err := postgres.NewStore(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(ctx))

	// One database for the whole suite; each sub-test starts from empty tables.
	conn, err := pgx.Connect(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close(context.Background()) })

	storetest.Run(t, func(t *testing.T) store.Store {
		_, err := conn.Exec(ctx, `truncate users, credentials, notes cascade`)
		require.NoError(t, err)
		return s
	})

	// Migrations are idempotent.
	require.NoError(t, s.ApplyMigrations())
}

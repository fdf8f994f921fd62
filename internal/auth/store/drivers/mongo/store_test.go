package mongo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/hdnotes/internal/auth/store"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store/drivers/mongo"
	"github.com/aussiebroadwan/hdnotes/internal/auth/store/storetest"
	"github.com/aussiebroadwan/hdnotes/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startMongo(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in -short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForLog("Waiting for connections").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	return fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}

func TestStoreContract(t *testing.T) {
	uri := startMongo(t)

	// Every sub-test gets its own database.
	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := mongo.NewStore(context.Background(), uri, "hdnotes_"+idx.New().String())
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		require.NoError(t, s.ApplyMigrations())
		require.NoError(t, s.ApplyMigrations())
		return s
	})
}

package mongo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store/drivers/mongo"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store/storetest"
	"github.com/aussiebroadwan/researchdesk/pkg/idx"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startMongo(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForListeningPort("27017/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	return fmt.Sprintf("mongodb://%s:%s", host, port.Port())
}

func TestStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	uri := startMongo(t)

	storetest.Run(t, func(t *testing.T) store.Store {
		// A fresh database per subtest keeps the suites independent.
		s, err := mongo.NewStore(context.Background(), uri, "researchdesk_"+idx.New().String())
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })

		require.NoError(t, s.ApplyMigrations())
		return s
	})
}

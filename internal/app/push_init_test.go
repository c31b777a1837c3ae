package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	healthcheck "github.com/vladislavdragonenkov/storefront/internal/health"
	"github.com/vladislavdragonenkov/storefront/internal/service/push"
)

func TestInitPushDispatcher_RequiresCredentialsWithoutMocks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowMockIntegrations = false

	dispatcher, checker, err := initPushDispatcher(context.Background(), cfg, testLogger())
	require.Error(t, err)
	require.Nil(t, dispatcher)
	require.Nil(t, checker)
}

func TestInitPushDispatcher_MockWhenAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowMockIntegrations = true

	dispatcher, checker, err := initPushDispatcher(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	require.IsType(t, &push.MockDispatcher{}, dispatcher)

	check := checker.Check(context.Background())
	require.Equal(t, healthcheck.StatusDegraded, check.Status)
}

func TestInitPushDispatcher_InvalidCredentials(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowMockIntegrations = true
	cfg.FirebaseServiceAccountJSON = `{"project_id": "demo"}`

	_, _, err := initPushDispatcher(context.Background(), cfg, testLogger())
	require.Error(t, err)
	require.Contains(t, err.Error(), "load firebase service account")
}

package cmd

import (
	"context"
	"net/http"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpro/stockpro-cli/internal/inflight"
)

func TestClientFactory_DefaultGuardIsInProcess(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())
	flags = defaultFlags()

	client, err := getClient()
	require.NoError(t, err)
	_, ok := client.Guard.(*inflight.Memory)
	assert.True(t, ok, "got %T", client.Guard)
}

func TestClientFactory_InvalidRedisURL(t *testing.T) {
	setupTestEnvWithHandler(t, newRouteHandler())
	t.Setenv("STOCKPRO_REDIS_URL", "://nope")
	flags = defaultFlags()

	_, err := getClient()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid STOCKPRO_REDIS_URL")
}

func TestClientFactory_DuplicateDeleteRejectedWhenRedisIsDown(t *testing.T) {
	entered := make(chan struct{})
	unblock := make(chan struct{})
	handler := newRouteHandler().
		On("DELETE", "/api/products/7/", func(w http.ResponseWriter, _ *http.Request) {
			close(entered)
			<-unblock
			w.WriteHeader(http.StatusNoContent)
		})
	setupTestEnvWithHandler(t, handler)

	mr := miniredis.RunT(t)
	t.Setenv("STOCKPRO_REDIS_URL", "redis://"+mr.Addr()+"/0")
	mr.Close()

	flags = defaultFlags()
	t.Cleanup(closeClients)
	client, err := getClient()
	require.NoError(t, err)
	_, ok := client.Guard.(inflight.Chain)
	require.True(t, ok, "got %T", client.Guard)

	first := make(chan error, 1)
	go func() {
		first <- client.Products().Delete(context.Background(), 7)
	}()
	<-entered

	err = client.Products().Delete(context.Background(), 7)
	assert.ErrorIs(t, err, inflight.ErrInFlight)

	close(unblock)
	require.NoError(t, <-first)
	assert.Equal(t, 1, handler.count("DELETE", "/api/products/7/"))
}

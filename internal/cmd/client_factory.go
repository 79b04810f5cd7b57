package cmd

import (
	"fmt"
	"sync"
	"time"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/config"
	"github.com/stockpro/stockpro-cli/internal/inflight"
)

// minGuardTTL bounds how long a crashed process can keep a record locked in
// the shared guard.
const minGuardTTL = 30 * time.Second

type clientFactory struct {
	baseURL   string
	timeout   time.Duration
	userAgent string
}

func newClientFactory() *clientFactory {
	return &clientFactory{
		baseURL:   flags.BaseURL,
		timeout:   flags.Timeout,
		userAgent: fmt.Sprintf("stockpro-cli/%s", version),
	}
}

// getClient creates an API client from the resolved configuration. The
// token is read from the keyring (or STOCKPRO_ACCESS_TOKEN) on every request.
func getClient() (*api.Client, error) {
	return newClientFactory().client()
}

func (f *clientFactory) client() (*api.Client, error) {
	cfg, err := config.ResolveClientConfig(f.baseURL)
	if err != nil {
		return nil, err
	}
	client := api.New(cfg.BaseURL, config.KeyringTokens{})
	if f.timeout > 0 {
		client.HTTP.Timeout = f.timeout
	}
	client.UserAgent = f.userAgent

	if cfg.RedisURL != "" {
		guard, err := inflight.NewRedisFromURL(cfg.RedisURL, f.guardTTL())
		if err != nil {
			return nil, fmt.Errorf("invalid STOCKPRO_REDIS_URL: %w", err)
		}
		// The in-process guard still applies while Redis is unreachable.
		client.Guard = inflight.Chain{client.Guard, guard}
		registerCloser(guard.Close)
	}
	return client, nil
}

func (f *clientFactory) guardTTL() time.Duration {
	if ttl := 2 * f.timeout; ttl > minGuardTTL {
		return ttl
	}
	return minGuardTTL
}

var (
	closersMu sync.Mutex
	closers   []func() error
)

func registerCloser(fn func() error) {
	closersMu.Lock()
	defer closersMu.Unlock()
	closers = append(closers, fn)
}

// closeClients releases connections opened during one Execute call.
func closeClients() {
	closersMu.Lock()
	defer closersMu.Unlock()
	for _, fn := range closers {
		_ = fn()
	}
	closers = nil
}

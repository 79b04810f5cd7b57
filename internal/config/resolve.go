package config

import (
	"errors"
	"fmt"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/validation"
)

// ClientConfig contains resolved API client settings.
type ClientConfig struct {
	BaseURL  string
	RedisURL string
	Profile  Profile
}

// ResolveClientConfig resolves the backend URL. Precedence: override (the
// --base-url flag), STOCKPRO_BASE_URL, the stored profile, the default.
// A missing profile is not an error; the backend answers 401 instead.
func ResolveClientConfig(baseURLOverride string) (ClientConfig, error) {
	var cfg ClientConfig

	profile, err := LoadProfile()
	switch {
	case err == nil:
		cfg.Profile = profile
		cfg.BaseURL = profile.BaseURL
	case errors.Is(err, ErrNotConfigured):
	default:
		if !HasEnvToken() {
			return ClientConfig{}, err
		}
	}

	if env := firstNonBlankEnv(envBaseURL); env != "" {
		cfg.BaseURL = env
	}
	if baseURLOverride != "" {
		cfg.BaseURL = baseURLOverride
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = api.DefaultBaseURL
	}

	if err := validation.ValidateBaseURL(cfg.BaseURL); err != nil {
		return ClientConfig{}, fmt.Errorf("invalid base URL: %w", err)
	}
	cfg.BaseURL = validation.NormalizeBaseURL(cfg.BaseURL)
	cfg.RedisURL = firstNonBlankEnv(envRedisURL)
	return cfg, nil
}

// HasEnvToken reports whether STOCKPRO_ACCESS_TOKEN is set, in which case
// the keyring is never needed for requests.
func HasEnvToken() bool {
	return firstNonBlankEnv(envAccessToken) != ""
}

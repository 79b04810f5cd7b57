package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/99designs/keyring"

	"github.com/stockpro/stockpro-cli/internal/api"
)

// ErrNotConfigured is returned when nobody is logged in.
var ErrNotConfigured = errors.New("stockpro not configured - run 'stockpro auth login' first")

// Profile is the non-secret part of a login: where the backend lives and who
// the token belongs to.
type Profile struct {
	BaseURL string `json:"base_url"`
	UserID  int    `json:"user_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Prenom  string `json:"prenom,omitempty"`
	Nom     string `json:"nom,omitempty"`
	Role    string `json:"role,omitempty"`
}

// IsAdmin reports whether the stored user has the admin role.
func (p Profile) IsAdmin() bool {
	return p.Role == string(api.RoleAdmin)
}

// Session is everything stored by a successful login.
type Session struct {
	AccessToken  string
	RefreshToken string
	Profile      Profile
}

// SaveSession stores tokens and profile in the keyring.
func SaveSession(s Session) error {
	ring, err := open()
	if err != nil {
		return err
	}

	data, err := json.Marshal(s.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	items := []keyring.Item{
		{Key: accessTokenKey, Label: "StockPro access token", Data: []byte(s.AccessToken)},
		{Key: profileKey, Label: "StockPro profile", Data: data},
	}
	if s.RefreshToken != "" {
		items = append(items, keyring.Item{Key: refreshTokenKey, Label: "StockPro refresh token", Data: []byte(s.RefreshToken)})
	}
	for _, item := range items {
		if err := ring.Set(item); err != nil {
			return fmt.Errorf("failed to save %s: %w", item.Key, err)
		}
	}
	return nil
}

// LoadProfile returns the stored profile.
func LoadProfile() (Profile, error) {
	ring, err := open()
	if err != nil {
		return Profile{}, err
	}
	item, err := ring.Get(profileKey)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return Profile{}, ErrNotConfigured
		}
		return Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(item.Data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return p, nil
}

// AccessToken returns the bearer token: STOCKPRO_ACCESS_TOKEN when set,
// otherwise the keyring item. api.ErrNoToken when neither exists.
func AccessToken() (string, error) {
	if token := firstNonBlankEnv(envAccessToken); token != "" {
		return token, nil
	}
	return readSecret(accessTokenKey, api.ErrNoToken)
}

// RefreshToken returns the stored refresh token or ErrNotConfigured.
func RefreshToken() (string, error) {
	return readSecret(refreshTokenKey, ErrNotConfigured)
}

func readSecret(key string, missing error) (string, error) {
	ring, err := open()
	if err != nil {
		return "", err
	}
	item, err := ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", missing
		}
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	token := strings.TrimSpace(string(item.Data))
	if token == "" {
		return "", missing
	}
	return token, nil
}

// ClearSession removes tokens and profile. Missing items are not an error.
func ClearSession() error {
	ring, err := open()
	if err != nil {
		return err
	}
	for _, key := range []string{accessTokenKey, refreshTokenKey, profileKey} {
		if err := ring.Remove(key); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
			return fmt.Errorf("failed to remove %s: %w", key, err)
		}
	}
	return nil
}

// HasSession reports whether an access token is available.
func HasSession() bool {
	_, err := AccessToken()
	return err == nil
}

// KeyringTokens reads the access token from the environment or keyring on
// every call, so a login in another terminal is picked up without restarting.
type KeyringTokens struct{}

var _ api.TokenProvider = KeyringTokens{}

func (KeyringTokens) Token(context.Context) (string, error) {
	return AccessToken()
}

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/99designs/keyring"

	"github.com/stockpro/stockpro-cli/internal/api"
)

// withMockKeyring sets up a mock keyring for the duration of a test
func withMockKeyring(t *testing.T, ring keyring.Keyring) {
	t.Helper()
	t.Cleanup(SetOpenKeyring(func(cfg keyring.Config) (keyring.Keyring, error) {
		return ring, nil
	}))
}

// withFailingKeyring sets up a keyring that always fails to open
func withFailingKeyring(t *testing.T, err error) {
	t.Helper()
	t.Cleanup(SetOpenKeyring(func(cfg keyring.Config) (keyring.Keyring, error) {
		return nil, err
	}))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envBaseURL, envAccessToken, envRedisURL, envKeyringBackend, envKeyringPassword, envCredentialsDir} {
		t.Setenv(key, "")
	}
}

func TestSaveAndLoadSession(t *testing.T) {
	clearEnv(t)
	ring := keyring.NewArrayKeyring(nil)
	withMockKeyring(t, ring)

	err := SaveSession(Session{
		AccessToken:  "acc",
		RefreshToken: "ref",
		Profile:      Profile{BaseURL: "http://localhost:8000/api/", UserID: 1, Prenom: "Awa", Role: "admin"},
	})
	if err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	token, err := AccessToken()
	if err != nil || token != "acc" {
		t.Errorf("AccessToken() = %q, %v", token, err)
	}
	refresh, err := RefreshToken()
	if err != nil || refresh != "ref" {
		t.Errorf("RefreshToken() = %q, %v", refresh, err)
	}
	profile, err := LoadProfile()
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if profile.Prenom != "Awa" || !profile.IsAdmin() {
		t.Errorf("unexpected profile: %+v", profile)
	}

	keys, _ := ring.Keys()
	if len(keys) != 3 {
		t.Errorf("expected 3 keyring items, got %v", keys)
	}
}

func TestSaveSessionWithoutRefresh(t *testing.T) {
	clearEnv(t)
	withMockKeyring(t, keyring.NewArrayKeyring(nil))

	if err := SaveSession(Session{AccessToken: "acc"}); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if _, err := RefreshToken(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAccessToken_Missing(t *testing.T) {
	clearEnv(t)
	withMockKeyring(t, keyring.NewArrayKeyring(nil))

	if _, err := AccessToken(); !errors.Is(err, api.ErrNoToken) {
		t.Errorf("expected api.ErrNoToken, got %v", err)
	}
	if HasSession() {
		t.Error("HasSession() should be false")
	}
	if _, err := LoadProfile(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAccessToken_BlankItemIsMissing(t *testing.T) {
	clearEnv(t)
	withMockKeyring(t, keyring.NewArrayKeyring([]keyring.Item{{Key: accessTokenKey, Data: []byte("  ")}}))

	if _, err := AccessToken(); !errors.Is(err, api.ErrNoToken) {
		t.Errorf("expected api.ErrNoToken, got %v", err)
	}
}

func TestAccessToken_EnvWins(t *testing.T) {
	clearEnv(t)
	t.Setenv(envAccessToken, "from-env")
	withFailingKeyring(t, errors.New("should not be opened"))

	token, err := AccessToken()
	if err != nil || token != "from-env" {
		t.Errorf("AccessToken() = %q, %v", token, err)
	}
	if !HasEnvToken() {
		t.Error("HasEnvToken() should be true")
	}
}

func TestAccessToken_KeyringError(t *testing.T) {
	clearEnv(t)
	withFailingKeyring(t, errors.New("locked"))

	_, err := AccessToken()
	if err == nil || !strings.Contains(err.Error(), "failed to open keyring") {
		t.Errorf("expected keyring error, got %v", err)
	}
}

func TestKeyringTokensReadsEveryCall(t *testing.T) {
	clearEnv(t)
	ring := keyring.NewArrayKeyring([]keyring.Item{{Key: accessTokenKey, Data: []byte("one")}})
	withMockKeyring(t, ring)

	var tokens KeyringTokens
	first, err := tokens.Token(context.Background())
	if err != nil || first != "one" {
		t.Fatalf("first token = %q, %v", first, err)
	}
	_ = ring.Set(keyring.Item{Key: accessTokenKey, Data: []byte("two")})
	second, _ := tokens.Token(context.Background())
	if second != "two" {
		t.Errorf("expected refreshed token, got %q", second)
	}
}

func TestClearSession(t *testing.T) {
	clearEnv(t)
	ring := keyring.NewArrayKeyring(nil)
	withMockKeyring(t, ring)

	if err := ClearSession(); err != nil {
		t.Fatalf("ClearSession on empty keyring: %v", err)
	}
	_ = SaveSession(Session{AccessToken: "a", RefreshToken: "r", Profile: Profile{BaseURL: "http://x/"}})
	if err := ClearSession(); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}
	keys, _ := ring.Keys()
	if len(keys) != 0 {
		t.Errorf("expected empty keyring, got %v", keys)
	}
}

func TestLoadProfileInvalidJSON(t *testing.T) {
	clearEnv(t)
	withMockKeyring(t, keyring.NewArrayKeyring([]keyring.Item{{Key: profileKey, Data: []byte("{")}}))

	if _, err := LoadProfile(); err == nil || !strings.Contains(err.Error(), "unmarshal") {
		t.Errorf("expected unmarshal error, got %v", err)
	}
}

func TestResolveClientConfig(t *testing.T) {
	tests := []struct {
		name     string
		profile  string
		env      string
		override string
		want     string
	}{
		{name: "default", want: api.DefaultBaseURL},
		{name: "profile", profile: "https://stock.example.com/api", want: "https://stock.example.com/api/"},
		{name: "env beats profile", profile: "https://a.example.com/api/", env: "https://b.example.com/api/", want: "https://b.example.com/api/"},
		{name: "flag beats env", env: "https://b.example.com/api/", override: "http://localhost:9000/api", want: "http://localhost:9000/api/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			ring := keyring.NewArrayKeyring(nil)
			withMockKeyring(t, ring)
			if tt.profile != "" {
				_ = SaveSession(Session{AccessToken: "x", Profile: Profile{BaseURL: tt.profile}})
			}
			if tt.env != "" {
				t.Setenv(envBaseURL, tt.env)
			}
			cfg, err := ResolveClientConfig(tt.override)
			if err != nil {
				t.Fatalf("ResolveClientConfig: %v", err)
			}
			if cfg.BaseURL != tt.want {
				t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, tt.want)
			}
		})
	}
}

func TestResolveClientConfig_InvalidURL(t *testing.T) {
	clearEnv(t)
	withMockKeyring(t, keyring.NewArrayKeyring(nil))

	if _, err := ResolveClientConfig("ftp://example.com"); err == nil {
		t.Error("expected invalid base URL error")
	}
}

func TestResolveClientConfig_KeyringErrorWithEnvToken(t *testing.T) {
	clearEnv(t)
	withFailingKeyring(t, errors.New("locked"))

	if _, err := ResolveClientConfig(""); err == nil {
		t.Error("expected keyring error without env token")
	}

	t.Setenv(envAccessToken, "tok")
	t.Setenv(envRedisURL, "redis://localhost:6379/0")
	cfg, err := ResolveClientConfig("")
	if err != nil {
		t.Fatalf("ResolveClientConfig: %v", err)
	}
	if cfg.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "STOCKPRO_BASE_URL=https://dotenv.example.com/api/\nSTOCKPRO_REDIS_URL=redis://dotenv:6379\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	// Existing values win; unset ones are filled.
	t.Setenv(envBaseURL, "https://shell.example.com/api/")
	_ = os.Unsetenv(envRedisURL)

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv(envRedisURL) })

	if got := os.Getenv(envBaseURL); got != "https://shell.example.com/api/" {
		t.Errorf("existing variable overwritten: %q", got)
	}
	if got := os.Getenv(envRedisURL); got != "redis://dotenv:6379" {
		t.Errorf("dotenv variable not loaded: %q", got)
	}
}

func TestKeyringConfig_FileBackendOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(envKeyringBackend, "file")
	t.Setenv(envCredentialsDir, "/tmp/stockpro-creds")

	cfg := keyringConfig()
	if cfg.ServiceName != serviceName {
		t.Errorf("ServiceName = %q", cfg.ServiceName)
	}
	if len(cfg.AllowedBackends) != 1 || cfg.AllowedBackends[0] != keyring.FileBackend {
		t.Errorf("expected file backend only, got %v", cfg.AllowedBackends)
	}
	if cfg.FileDir != filepath.Join("/tmp/stockpro-creds", "keyring") {
		t.Errorf("FileDir = %q", cfg.FileDir)
	}
}

func TestKeyringConfig_SystemBackendOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(envKeyringBackend, "native")

	cfg := keyringConfig()
	if cfg.FileDir != "" || cfg.AllowedBackends != nil {
		t.Errorf("system backend should not configure file storage: %+v", cfg)
	}
}

func TestShouldForceFileBackend(t *testing.T) {
	tests := []struct {
		goos, backend, dbus string
		want                bool
	}{
		{"linux", keyringBackendAuto, "", true},
		{"linux", keyringBackendAuto, "unix:path=/run/user/1000/bus", false},
		{"darwin", keyringBackendAuto, "", false},
		{"darwin", keyringBackendFile, "", true},
		{"linux", keyringBackendSystem, "", false},
	}
	for _, tt := range tests {
		if got := shouldForceFileBackend(tt.goos, tt.backend, tt.dbus); got != tt.want {
			t.Errorf("shouldForceFileBackend(%q, %q, %q) = %v, want %v", tt.goos, tt.backend, tt.dbus, got, tt.want)
		}
	}
}

func TestKeyringFileDir_DefaultsToUserConfigDir(t *testing.T) {
	clearEnv(t)
	original := userConfigDir
	userConfigDir = func() (string, error) { return "/home/awa/.config", nil }
	t.Cleanup(func() { userConfigDir = original })

	want := filepath.Join("/home/awa/.config", serviceName, "keyring")
	if got := keyringFileDir(); got != want {
		t.Errorf("keyringFileDir() = %q, want %q", got, want)
	}
}

func TestKeyringFilePassword(t *testing.T) {
	clearEnv(t)
	t.Setenv(envKeyringPassword, "s3cret")
	if pw, err := keyringFilePassword("prompt"); err != nil || pw != "s3cret" {
		t.Errorf("keyringFilePassword() = %q, %v", pw, err)
	}

	t.Setenv(envKeyringPassword, "")
	original := stdinHasTTY
	stdinHasTTY = func() bool { return false }
	t.Cleanup(func() { stdinHasTTY = original })
	if _, err := keyringFilePassword("prompt"); err == nil || !strings.Contains(err.Error(), envKeyringPassword) {
		t.Errorf("expected non-interactive error, got %v", err)
	}
}

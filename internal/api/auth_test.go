package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpro/stockpro-cli/internal/debug"
)

func TestAuthService_DebugLogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	debug.SetupLoggerTo(&buf, true)
	t.Cleanup(func() { debug.SetupLoggerTo(io.Discard, false) })

	fail := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Jeton invalide"}`))
			return
		}
		switch r.URL.Path {
		case "/auth/login/":
			_, _ = w.Write([]byte(`{"access":"acc","refresh":"ref"}`))
		case "/auth/logout/":
			w.WriteHeader(http.StatusResetContent)
		case "/auth/me/":
			_, _ = w.Write([]byte(`{"id":4,"prenom":"Awa"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	ctx := debug.WithDebug(context.Background(), true)
	client := newTestClient(server.URL, "acc")

	_, err := client.Auth().Login(ctx, "admin@stockpro.sn", "pw")
	require.NoError(t, err)
	_, err = client.Auth().Me(ctx)
	require.NoError(t, err)
	require.NoError(t, client.Auth().Logout(ctx, "ref"))

	out := buf.String()
	assert.Contains(t, out, "logged in")
	assert.Contains(t, out, "profile_included=false")
	assert.Contains(t, out, "fetched current user")
	assert.Contains(t, out, "id=4")
	assert.Contains(t, out, "logged out")

	buf.Reset()
	fail = true
	_, err = client.Auth().Login(ctx, "admin@stockpro.sn", "bad")
	require.Error(t, err)
	_, err = client.Auth().Me(ctx)
	require.Error(t, err)
	require.Error(t, client.Auth().Logout(ctx, "ref"))

	out = buf.String()
	assert.Contains(t, out, "login failed")
	assert.Contains(t, out, "current user fetch failed")
	assert.Contains(t, out, "logout failed")
	assert.NotContains(t, out, "logged in")
}

func TestAuthService_SilentWithoutDebug(t *testing.T) {
	var buf bytes.Buffer
	debug.SetupLoggerTo(&buf, true)
	t.Cleanup(func() { debug.SetupLoggerTo(io.Discard, false) })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":4}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL, "acc").Auth().Me(context.Background())
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

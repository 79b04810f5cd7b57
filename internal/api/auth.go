package api

import (
	"context"
	"net/http"

	"github.com/stockpro/stockpro-cli/internal/debug"
)

const (
	loginPath  = "auth/login/"
	logoutPath = "auth/logout/"
	mePath     = "auth/me/"
)

// TokenPair is the login response.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
	User    *User  `json:"user,omitempty"`
}

// Login exchanges credentials for an access/refresh token pair.
func (s AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	debug.Log(ctx, "logging in", "email", email)
	var result TokenPair
	body := jsonBody{map[string]string{"email": email, "password": password}}
	if err := s.r.do(ctx, http.MethodPost, loginPath, body, &result); err != nil {
		debug.Log(ctx, "login failed", "email", email, "error", err)
		return nil, err
	}
	debug.Log(ctx, "logged in", "email", email, "profile_included", result.User != nil)
	return &result, nil
}

// Logout invalidates the refresh token on the backend.
func (s AuthService) Logout(ctx context.Context, refresh string) error {
	debug.Log(ctx, "logging out")
	if _, err := s.r.execute(ctx, http.MethodPost, logoutPath, jsonBody{map[string]string{"refresh": refresh}}); err != nil {
		debug.Log(ctx, "logout failed", "error", err)
		return err
	}
	debug.Log(ctx, "logged out")
	return nil
}

// Me returns the user owning the current access token.
func (s AuthService) Me(ctx context.Context) (*User, error) {
	debug.Log(ctx, "fetching current user")
	var result User
	if err := s.r.do(ctx, http.MethodGet, mePath, nil, &result); err != nil {
		debug.Log(ctx, "current user fetch failed", "error", err)
		return nil, err
	}
	debug.Log(ctx, "fetched current user", "id", result.ID)
	return &result, nil
}

package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/99designs/keyring"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/config"
	"github.com/stockpro/stockpro-cli/internal/validation"
)

// promptPassword reads a password without echo. Replaced in tests.
var promptPassword = keyring.TerminalPrompt

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Log in and manage stored credentials",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthWhoamiCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var (
		email         string
		password      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Long: strings.TrimSpace(`
Exchange your StockPro email and password for an access token and store it,
with the refresh token and your profile, in the OS keychain.

The password is prompted for when it is not given with --password or
--password-stdin.
`),
		Example: strings.TrimSpace(`
  stockpro auth login --email admin@stockpro.sn
  stockpro --base-url https://stock.example.com/api/ auth login --email admin@stockpro.sn
  echo "$PASSWORD" | stockpro auth login --email admin@stockpro.sn --password-stdin
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if err := validation.ValidateEmailFormat(email); err != nil {
				return err
			}
			switch {
			case passwordStdin && password != "":
				return fmt.Errorf("--password conflicts with --password-stdin")
			case passwordStdin:
				line, err := readLine(cmd)
				if err != nil {
					return fmt.Errorf("failed to read password from stdin: %w", err)
				}
				password = line
			case password == "":
				if !ioStreams(cmd).IsInteractive() {
					return fmt.Errorf("--password or --password-stdin is required when stdin is not a terminal")
				}
				entered, err := promptPassword("Password: ")
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}
				password = entered
			}
			if password == "" {
				return fmt.Errorf("password is required")
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			ctx := cmdContext(cmd)

			pair, err := client.Auth().Login(ctx, email, password)
			if err != nil {
				return err
			}
			if pair.Access == "" {
				return fmt.Errorf("login response did not include an access token")
			}

			user := pair.User
			if user == nil {
				authed := api.New(client.BaseURL, api.StaticToken(pair.Access))
				authed.HTTP = client.HTTP
				authed.UserAgent = client.UserAgent
				if user, err = authed.Auth().Me(ctx); err != nil {
					return fmt.Errorf("logged in but failed to load your profile: %w", err)
				}
			}

			profile := config.Profile{
				BaseURL: client.BaseURL,
				UserID:  user.ID,
				Email:   firstNonEmpty(user.Email, email),
				Prenom:  user.Prenom,
				Nom:     user.Nom,
				Role:    string(user.Role),
			}
			if err := config.SaveSession(config.Session{
				AccessToken:  pair.Access,
				RefreshToken: pair.Refresh,
				Profile:      profile,
			}); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"logged_in": true, "profile": profile})
			}
			out := ioStreams(cmd).Out
			_, _ = fmt.Fprintf(out, "Logged in as %s (%s)\n", orDash(user.FullName()), profile.Role)
			_, _ = fmt.Fprintf(out, "  Base URL: %s\n", profile.BaseURL)
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from stdin")
	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and remove stored credentials",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			refresh, err := config.RefreshToken()
			if err != nil {
				if errors.Is(err, config.ErrNotConfigured) {
					if isJSON(cmd) {
						return printJSON(cmd, map[string]any{"logged_out": false})
					}
					_, _ = fmt.Fprintln(ioStreams(cmd).Out, "No credentials found.")
					return nil
				}
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			if err := client.Auth().Logout(cmdContext(cmd), refresh); err != nil {
				// Local credentials are removed even when the backend is unreachable.
				_, _ = fmt.Fprintf(ioStreams(cmd).ErrOut, "Warning: backend logout failed: %v\n", err)
			}

			if err := config.ClearSession(); err != nil {
				return fmt.Errorf("failed to remove credentials: %w", err)
			}
			if isJSON(cmd) {
				return printJSON(cmd, map[string]any{"logged_out": true})
			}
			_, _ = fmt.Fprintln(ioStreams(cmd).Out, "Credentials removed successfully.")
			return nil
		}),
	}
}

type authStatus struct {
	Authenticated bool       `json:"authenticated"`
	Source        string     `json:"source,omitempty"`
	BaseURL       string     `json:"base_url,omitempty"`
	User          string     `json:"user,omitempty"`
	Email         string     `json:"email,omitempty"`
	Role          string     `json:"role,omitempty"`
	Token         string     `json:"token,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Expired       bool       `json:"expired"`
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			token, err := config.AccessToken()
			if err != nil && !errors.Is(err, api.ErrNoToken) {
				return err
			}
			status := authStatus{Authenticated: token != ""}
			if status.Authenticated {
				status.Source = "keyring"
				if config.HasEnvToken() {
					status.Source = "env"
				}
				status.Token = maskToken(token)
				if exp, ok := tokenExpiry(token); ok {
					status.ExpiresAt = &exp
					status.Expired = time.Now().After(exp)
				}
				if cfg, err := config.ResolveClientConfig(flags.BaseURL); err == nil {
					status.BaseURL = cfg.BaseURL
					status.User = strings.TrimSpace(cfg.Profile.Prenom + " " + cfg.Profile.Nom)
					status.Email = cfg.Profile.Email
					status.Role = cfg.Profile.Role
				}
			}

			if isJSON(cmd) {
				return printJSON(cmd, status)
			}
			out := ioStreams(cmd).Out
			if !status.Authenticated {
				_, _ = fmt.Fprintln(out, "Not authenticated.")
				_, _ = fmt.Fprintln(out, "Run 'stockpro auth login' to log in.")
				return nil
			}
			_, _ = fmt.Fprintln(out, "Authenticated")
			_, _ = fmt.Fprintf(out, "  Base URL: %s\n", orDash(status.BaseURL))
			if status.User != "" || status.Email != "" {
				_, _ = fmt.Fprintf(out, "  User:     %s <%s>\n", orDash(status.User), status.Email)
				_, _ = fmt.Fprintf(out, "  Role:     %s\n", orDash(status.Role))
			}
			_, _ = fmt.Fprintf(out, "  Token:    %s\n", status.Token)
			if status.ExpiresAt != nil {
				label := status.ExpiresAt.Local().Format(time.RFC3339)
				if status.Expired {
					label += " " + colorize(cmd, "(expired)", colorRed)
				}
				_, _ = fmt.Fprintf(out, "  Expires:  %s\n", label)
			}
			_, _ = fmt.Fprintf(out, "  Source:   %s\n", status.Source)
			return nil
		}),
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user owning the current token",
		Args:  cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			client, err := getClient()
			if err != nil {
				return err
			}
			user, err := client.Auth().Me(cmdContext(cmd))
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, user)
			}
			return printUserDetails(ioStreams(cmd).Out, user)
		}),
	}
}

// tokenExpiry reads the exp claim. The signature is not verified.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// maskToken masks a token for display, showing only first and last 4 characters
func maskToken(token string) string {
	if len(token) < 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

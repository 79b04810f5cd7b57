package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/debug"
	"github.com/stockpro/stockpro-cli/internal/dryrun"
	"github.com/stockpro/stockpro-cli/internal/iocontext"
	"github.com/stockpro/stockpro-cli/internal/outfmt"
)

// rootFlags holds global CLI flags
type rootFlags struct {
	BaseURL  string
	Output   string
	Color    string
	Debug    bool
	DryRun   bool
	Quiet    bool
	Yes      bool
	JSON     bool
	Query    string
	JQ       string
	Template string
	Compact  bool
	Timeout  time.Duration
}

// flags holds the global command flags. It is reset at the start of every
// Execute call; reading it outside a command's RunE sees stale values.
var flags = defaultFlags()

func defaultFlags() rootFlags {
	return rootFlags{
		Output:  defaultOutput(),
		Color:   "auto",
		Timeout: api.DefaultTimeout,
	}
}

func defaultOutput() string {
	value := strings.TrimSpace(os.Getenv("STOCKPRO_OUTPUT"))
	if value == "" {
		return "text"
	}
	return value
}

// Execute runs the root command
func Execute(ctx context.Context, args []string) error {
	flags = defaultFlags()
	defer closeClients()

	root := &cobra.Command{
		Use:   "stockpro",
		Short: "CLI for the StockPro retail stock management backend",
		Long: strings.TrimSpace(`
Manage StockPro users, products, stores, suppliers, stock, attendance and
messages from the command line, and talk to the StockPro assistant.

Start with:
  stockpro auth login --email you@example.com
  stockpro summary
  stockpro chat
`),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupContext(cmd)
		},
	}

	streams := *iocontext.GetIO(ctx)
	root.SetContext(ctx)
	root.SetArgs(args)
	root.SetIn(streams.In)
	root.SetOut(streams.Out)
	root.SetErr(streams.ErrOut)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.BaseURL, "base-url", "", "Backend API base URL (env STOCKPRO_BASE_URL)")
	pf.StringVarP(&flags.Output, "output", "o", flags.Output, "Output format: text|json|jsonl (env STOCKPRO_OUTPUT)")
	pf.BoolVarP(&flags.JSON, "json", "j", false, "Shorthand for --output json")
	pf.StringVarP(&flags.Query, "query", "q", "", "JQ expression to filter JSON output")
	pf.StringVar(&flags.JQ, "jq", "", "Alias for --query")
	pf.StringVar(&flags.Template, "template", "", "Go template string (or @path) to render JSON output")
	pf.BoolVar(&flags.Compact, "compact-json", false, "Compact JSON output (no indentation)")
	pf.StringVar(&flags.Color, "color", flags.Color, "Color output: auto|always|never")
	pf.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	pf.BoolVar(&flags.DryRun, "dry-run", false, "Preview changes without executing")
	pf.BoolVarP(&flags.Quiet, "quiet", "Q", false, "Suppress non-essential output")
	pf.BoolVarP(&flags.Yes, "yes", "y", false, "Skip confirmation prompts")
	pf.DurationVar(&flags.Timeout, "timeout", flags.Timeout, "HTTP request timeout (e.g., 30s, 2m)")

	root.AddCommand(newAuthCmd())
	root.AddCommand(newUsersCmd())
	root.AddCommand(newProductsCmd())
	root.AddCommand(newStoresCmd())
	root.AddCommand(newSuppliersCmd())
	root.AddCommand(newStocksCmd())
	root.AddCommand(newAttendanceCmd())
	root.AddCommand(newMessagesCmd())
	root.AddCommand(newSummaryCmd())
	root.AddCommand(newChatCmd())
	root.AddCommand(newSchemaCmd())
	root.AddCommand(newVersionCmd())

	if err := root.Execute(); err != nil {
		if !errors.Is(err, errAlreadyHandled) {
			_, _ = fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		}
		return err
	}
	return nil
}

// setupContext turns global flags into context values.
func setupContext(cmd *cobra.Command) error {
	ctx := cmd.Context()

	if flags.JSON {
		if cmd.Flags().Changed("output") && flags.Output != "json" {
			return fmt.Errorf("--json conflicts with --output %s", flags.Output)
		}
		flags.Output = "json"
	}
	query := getJQQuery()
	if (query != "" || flags.Template != "") && !cmd.Flags().Changed("output") {
		if flags.Output != "json" && flags.Output != "jsonl" && flags.Output != "ndjson" {
			flags.Output = "json"
		}
	}

	mode, err := outfmt.Parse(flags.Output)
	if err != nil {
		return err
	}
	if (query != "" || flags.Template != "") && mode == outfmt.Text {
		return fmt.Errorf("--query/--jq/--template require --output json or jsonl")
	}
	ctx = outfmt.WithMode(ctx, mode)
	ctx = outfmt.WithCompact(ctx, flags.Compact)
	if query != "" {
		ctx = outfmt.WithQuery(ctx, query)
	}
	if flags.Template != "" {
		tmpl, err := loadTemplate(flags.Template)
		if err != nil {
			return err
		}
		ctx = outfmt.WithTemplate(ctx, tmpl)
	}

	streams := &iocontext.IO{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), ErrOut: cmd.ErrOrStderr()}
	if flags.Quiet && mode == outfmt.Text {
		streams.Out = io.Discard
	}
	ctx = iocontext.WithIO(ctx, streams)

	switch flags.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid --color %q (use auto, always or never)", flags.Color)
	}
	if flags.Timeout < 0 {
		return fmt.Errorf("--timeout must be >= 0")
	}

	debug.SetupLoggerTo(cmd.ErrOrStderr(), flags.Debug)
	ctx = debug.WithDebug(ctx, flags.Debug)
	ctx = dryrun.WithDryRun(ctx, flags.DryRun)

	cmd.SetContext(ctx)
	return nil
}

// getJQQuery returns the jq query; --jq takes precedence over --query.
func getJQQuery() string {
	if flags.JQ != "" {
		return flags.JQ
	}
	return flags.Query
}

func loadTemplate(value string) (string, error) {
	if strings.HasPrefix(value, "@") {
		data, err := os.ReadFile(strings.TrimPrefix(value, "@"))
		if err != nil {
			return "", fmt.Errorf("failed to read template file: %w", err)
		}
		return string(data), nil
	}
	return value, nil
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/dryrun"
)

// ListConfig defines how a list command behaves
type ListConfig[T any] struct {
	Use          string
	Short        string
	Long         string
	Example      string
	Fetch        func(ctx context.Context, client *api.Client) ([]T, error)
	Headers      []string
	RowFunc      func(T) []string
	EmptyMessage string
	// Filter, when set, drops items after fetching. The backend has no
	// query parameters so every filter runs client-side.
	Filter func(cmd *cobra.Command, item T) bool
	// Flags registers command-specific flags used by Filter.
	Flags func(cmd *cobra.Command)
	// Validate checks flag values before anything is fetched.
	Validate func(cmd *cobra.Command) error
}

// NewListCommand creates a cobra command from ListConfig
func NewListCommand[T any](cfg ListConfig[T]) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     cfg.Use,
		Aliases: []string{"ls"},
		Short:   cfg.Short,
		Long:    cfg.Long,
		Example: cfg.Example,
		Args:    cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be >= 0")
			}
			if cfg.Validate != nil {
				if err := cfg.Validate(cmd); err != nil {
					return err
				}
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			items, err := cfg.Fetch(cmdContext(cmd), client)
			if err != nil {
				return err
			}

			if cfg.Filter != nil {
				kept := items[:0]
				for _, item := range items {
					if cfg.Filter(cmd, item) {
						kept = append(kept, item)
					}
				}
				items = kept
			}
			if limit > 0 && len(items) > limit {
				items = items[:limit]
			}

			if isJSON(cmd) {
				if items == nil {
					items = []T{}
				}
				return printJSON(cmd, items)
			}

			f := newFormatter(cmd)
			if len(items) == 0 {
				f.Empty(cfg.EmptyMessage)
				return nil
			}
			f.StartTable(cfg.Headers)
			for _, item := range items {
				f.Row(cfg.RowFunc(item)...)
			}
			return f.EndTable()
		}),
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Show at most this many records (0 = all)")
	if cfg.Flags != nil {
		cfg.Flags(cmd)
	}
	return cmd
}

// GetConfig defines a get-by-id command.
type GetConfig[T any] struct {
	Resource string
	Fetch    func(ctx context.Context, client *api.Client, id int) (*T, error)
	Detail   func(out io.Writer, item *T) error
}

// NewGetCommand creates a "get <id>" command.
func NewGetCommand[T any](cfg GetConfig[T]) *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		Aliases: []string{"show"},
		Short:   fmt.Sprintf("Show a %s", cfg.Resource),
		Args:    cobra.ExactArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0], cfg.Resource)
			if err != nil {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			item, err := cfg.Fetch(cmdContext(cmd), client, id)
			if err != nil {
				return err
			}

			if isJSON(cmd) {
				return printJSON(cmd, item)
			}
			return cfg.Detail(ioStreams(cmd).Out, item)
		}),
	}
}

// DeleteConfig defines a delete command accepting one or more ids.
type DeleteConfig struct {
	Resource string
	Path     string
	Delete   func(ctx context.Context, client *api.Client, id int) error
}

// NewDeleteCommand creates a "delete <id>..." command. Several ids are
// deleted concurrently.
func NewDeleteCommand(cfg DeleteConfig) *cobra.Command {
	var (
		force       bool
		concurrency int64
	)

	cmd := &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   fmt.Sprintf("Delete one or more %ss", cfg.Resource),
		Args:    cobra.MinimumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDArgs(args, cfg.Resource)
			if err != nil {
				return err
			}

			if handled, err := maybeDryRun(cmd, deletePreview(cfg, ids)); handled {
				return err
			}

			ok, err := confirmAction(cmd, confirmOptions{
				Prompt:        fmt.Sprintf("Delete %s %s? [y/N]: ", cfg.Resource, joinIDs(ids)),
				CancelMessage: "Cancelled.",
				Force:         force,
			})
			if err != nil || !ok {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			if len(ids) == 1 {
				if err := cfg.Delete(cmdContext(cmd), client, ids[0]); err != nil {
					return err
				}
				if isJSON(cmd) {
					return printJSON(cmd, map[string]any{"id": ids[0], "deleted": true})
				}
				printAction(cmd, "Deleted", cfg.Resource, ids[0], "")
				return nil
			}

			results := runBulkOperation(cmdContext(cmd), ids, concurrency, !isJSON(cmd) && !flags.Quiet, ioStreams(cmd).ErrOut,
				func(ctx context.Context, id int) (any, error) {
					return nil, cfg.Delete(ctx, client, id)
				})
			return reportBulk(cmd, "Deleted", cfg.Resource, results)
		}),
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the confirmation prompt")
	cmd.Flags().Int64Var(&concurrency, "concurrency", DefaultConcurrency, "Parallel requests when deleting several records")
	return cmd
}

func deletePreview(cfg DeleteConfig, ids []int) *dryrun.Preview {
	p := &dryrun.Preview{
		Operation: "delete",
		Resource:  fmt.Sprintf("%s %s", cfg.Resource, joinIDs(ids)),
		Method:    "DELETE",
		Warnings:  []string{"This action is irreversible"},
	}
	if len(ids) == 1 {
		p.Path = itemPath(cfg.Path, ids[0])
	} else {
		p.Path = cfg.Path + "<id>/"
		p.Details = map[string]any{"ids": ids}
	}
	return p
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return strings.Join(parts, ", ")
}

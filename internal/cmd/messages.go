package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/validation"
)

func newMessagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "messages",
		Aliases: []string{"message", "msg", "m"},
		Short:   "Send and read internal messages",
	}

	cmd.AddCommand(newMessagesListCmd())
	cmd.AddCommand(NewGetCommand(GetConfig[api.Message]{
		Resource: "message",
		Fetch: func(ctx context.Context, client *api.Client, id int) (*api.Message, error) {
			return client.Messages().Get(ctx, id)
		},
		Detail: printMessageDetails,
	}))
	cmd.AddCommand(newMessagesSendCmd())
	cmd.AddCommand(newMessagesReadCmd())
	cmd.AddCommand(NewDeleteCommand(DeleteConfig{
		Resource: "message",
		Path:     "messages/",
		Delete: func(ctx context.Context, client *api.Client, id int) error {
			return client.Messages().Delete(ctx, id)
		},
	}))

	return cmd
}

func newMessagesListCmd() *cobra.Command {
	var (
		unread bool
		fromID int
		window timeWindow
	)

	return NewListCommand(ListConfig[api.Message]{
		Use:          "list",
		Short:        "List messages",
		EmptyMessage: "No messages found",
		Fetch: func(ctx context.Context, client *api.Client) ([]api.Message, error) {
			return client.Messages().List(ctx)
		},
		Flags: func(cmd *cobra.Command) {
			cmd.Flags().BoolVar(&unread, "unread", false, "Only show unread messages")
			cmd.Flags().IntVar(&fromID, "from-id", 0, "Only show messages sent by this user")
			window.register(cmd, "messages sent")
		},
		Validate: func(*cobra.Command) error {
			return window.parse(time.Now())
		},
		Filter: func(_ *cobra.Command, m api.Message) bool {
			return (!unread || !m.Lu) &&
				(fromID == 0 || m.Expediteur.ID == fromID) &&
				window.contains(m.DateEnvoi)
		},
		Headers: []string{"ID", "SENT", "FROM", "TO", "READ", "CONTENT"},
		RowFunc: func(m api.Message) []string {
			read := "no"
			if m.Lu {
				read = "yes"
			}
			return []string{
				strconv.Itoa(m.ID),
				orDash(m.DateEnvoi),
				refLabel(m.Expediteur),
				refLabel(m.Destinataire),
				read,
				truncate(m.Contenu, 50),
			}
		},
	})
}

func newMessagesSendCmd() *cobra.Command {
	var to, text string

	cmd := &cobra.Command{
		Use:     "send [text]",
		Aliases: []string{"new"},
		Short:   "Send a message to another user",
		Long:    "Send a message. The text comes from the argument, --text, or stdin when it is \"-\".",
		Example: `  stockpro messages send --to "Awa Diop" "Inventaire demain 8h"
  echo "Livraison reçue" | stockpro messages send --to 4 -`,
		Args: cobra.MaximumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return fmt.Errorf("--to is required")
			}
			if len(args) == 1 {
				if text != "" {
					return fmt.Errorf("text argument conflicts with --text")
				}
				text = args[0]
			}
			if text == "-" {
				data, err := io.ReadAll(ioStreams(cmd).In)
				if err != nil {
					return fmt.Errorf("failed to read message from stdin: %w", err)
				}
				text = strings.TrimRight(string(data), "\r\n")
			}
			if err := validation.ValidateMessageContent(text); err != nil {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}
			recipient, err := resolveUserID(cmdContext(cmd), client, to)
			if err != nil {
				return err
			}

			in := api.MessageInput{Destinataire: recipient, Contenu: text}
			if handled, err := maybeDryRun(cmd, bodyPreview("create", "message", "POST", "messages/", in.CreateBody())); handled {
				return err
			}

			msg, err := client.Messages().Create(cmdContext(cmd), in)
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, msg)
			}
			printAction(cmd, "Sent", "message", msg.ID, "")
			return nil
		}),
	}

	cmd.Flags().StringVar(&to, "to", "", "Recipient (user ID, name, username or email)")
	cmd.Flags().StringVar(&text, "text", "", "Message text")
	return cmd
}

func newMessagesReadCmd() *cobra.Command {
	var concurrency int64

	cmd := &cobra.Command{
		Use:     "read <id>...",
		Aliases: []string{"mark-read"},
		Short:   "Mark messages as read",
		Args:    cobra.MinimumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDArgs(args, "message")
			if err != nil {
				return err
			}

			if handled, err := maybeDryRun(cmd, bodyPreview("update", "message "+joinIDs(ids), "PATCH", "messages/<id>/", map[string]any{"lu": true})); handled {
				return err
			}

			client, err := getClient()
			if err != nil {
				return err
			}

			if len(ids) == 1 {
				msg, err := client.Messages().MarkRead(cmdContext(cmd), ids[0])
				if err != nil {
					return err
				}
				if isJSON(cmd) {
					return printJSON(cmd, msg)
				}
				printAction(cmd, "Marked read", "message", msg.ID, "")
				return nil
			}

			results := runBulkOperation(cmdContext(cmd), ids, concurrency, !isJSON(cmd) && !flags.Quiet, ioStreams(cmd).ErrOut,
				func(ctx context.Context, id int) (*api.Message, error) {
					return client.Messages().MarkRead(ctx, id)
				})
			return reportBulk(cmd, "Marked read", "message", results)
		}),
	}

	cmd.Flags().Int64Var(&concurrency, "concurrency", DefaultConcurrency, "Parallel requests when marking several messages")
	return cmd
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

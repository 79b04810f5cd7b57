package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/chat"
	"github.com/stockpro/stockpro-cli/internal/config"
	"github.com/stockpro/stockpro-cli/internal/debug"
)

const typingIndicator = "L'assistant StockPro écrit..."

type chatFlags struct {
	role    string
	name    string
	noDelay bool
}

func (f *chatFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.role, "role", "", "Answer as for this role: admin|employee (defaults to your profile)")
	cmd.PersistentFlags().StringVar(&f.name, "name", "", "First name used in greetings (defaults to your profile)")
	cmd.PersistentFlags().BoolVar(&f.noDelay, "no-delay", false, "Answer immediately instead of simulating typing")
}

// user builds the assistant's view of the caller from the stored profile and
// the flag overrides. A missing profile is not an error.
func (f *chatFlags) user(ctx context.Context) (chat.User, error) {
	var u chat.User
	if profile, err := config.LoadProfile(); err == nil {
		u = chat.User{Prenom: profile.Prenom, Admin: profile.IsAdmin()}
	} else {
		debug.Log(ctx, "no stored profile for chat", "error", err)
	}
	if f.name != "" {
		u.Prenom = f.name
	}
	if f.role != "" {
		role := api.Role(f.role)
		if !role.Valid() {
			return chat.User{}, fmt.Errorf("invalid --role %q (use admin or employee)", f.role)
		}
		u.Admin = role == api.RoleAdmin
	}
	return u, nil
}

func (f *chatFlags) session(ctx context.Context) (*chat.Session, error) {
	u, err := f.user(ctx)
	if err != nil {
		return nil, err
	}
	var opts []chat.Option
	if f.noDelay {
		opts = append(opts, chat.WithoutDelay())
	}
	return chat.NewSession(u, opts...), nil
}

func newChatCmd() *cobra.Command {
	var f chatFlags

	cmd := &cobra.Command{
		Use:     "chat",
		Aliases: []string{"assistant", "bot"},
		Short:   "Talk to the StockPro assistant",
		Long: strings.TrimSpace(`
Start an interactive conversation with the StockPro assistant. It answers
questions about stock, attendance, products, stores, users and messaging in
French. Type "quitter" or press Ctrl+D to leave.

With --output json the whole conversation is printed when the session ends.
`),
		Args: cobra.NoArgs,
		RunE: RunE(func(cmd *cobra.Command, _ []string) error {
			ctx := cmdContext(cmd)
			session, err := f.session(ctx)
			if err != nil {
				return err
			}
			if err := runChatLoop(cmd, session); err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, session.Turns())
			}
			return nil
		}),
	}

	f.register(cmd)
	cmd.AddCommand(newChatAskCmd(&f))
	return cmd
}

func newChatAskCmd(f *chatFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "ask <question>...",
		Short:   "Ask the assistant a single question",
		Example: `  stockpro chat ask "Comment gérer le stock ?"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: RunE(func(cmd *cobra.Command, args []string) error {
			ctx := cmdContext(cmd)
			session, err := f.session(ctx)
			if err != nil {
				return err
			}
			reply, err := session.Send(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if isJSON(cmd) {
				return printJSON(cmd, reply)
			}
			_, _ = fmt.Fprintln(ioStreams(cmd).Out, reply.Content)
			return nil
		}),
	}
}

func isChatExit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "quit", "exit", "quitter", "/quit", "/exit", ":q":
		return true
	}
	return false
}

// runChatLoop reads one message per line until EOF, an exit word or a
// cancelled context. In JSON mode nothing but the final transcript is
// written to stdout.
func runChatLoop(cmd *cobra.Command, session *chat.Session) error {
	ctx := cmdContext(cmd)
	streams := ioStreams(cmd)
	interactive := streams.IsInteractive()
	text := !isJSON(cmd)

	say := func(content string) {
		if text {
			_, _ = fmt.Fprintf(streams.Out, "%s %s\n\n", colorize(cmd, "StockPro:", colorBold+colorGreen), content)
		}
	}

	turns := session.Turns()
	say(turns[len(turns)-1].Content)

	scanner := bufio.NewScanner(streams.In)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		if interactive {
			_, _ = fmt.Fprint(streams.ErrOut, colorize(cmd, "> ", colorBold))
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isChatExit(line) {
			break
		}

		if interactive && text {
			_, _ = fmt.Fprint(streams.ErrOut, colorize(cmd, typingIndicator, colorYellow))
		}
		reply, err := session.Send(ctx, line)
		if interactive && text {
			_, _ = fmt.Fprint(streams.ErrOut, "\r\033[K")
		}
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}
		say(reply.Content)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

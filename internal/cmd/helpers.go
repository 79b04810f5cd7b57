package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/dryrun"
	"github.com/stockpro/stockpro-cli/internal/iocontext"
	"github.com/stockpro/stockpro-cli/internal/outfmt"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

// cmdContext returns the command context
func cmdContext(cmd *cobra.Command) context.Context {
	return cmd.Context()
}

func ioStreams(cmd *cobra.Command) *iocontext.IO {
	return iocontext.GetIO(cmd.Context())
}

func newFormatter(cmd *cobra.Command) *outfmt.Formatter {
	streams := ioStreams(cmd)
	return outfmt.NewFormatter(cmd.Context(), streams.Out, streams.ErrOut)
}

// isJSON checks if the command context wants JSON or JSONL output
func isJSON(cmd *cobra.Command) bool {
	return outfmt.IsJSON(cmd.Context())
}

// printJSON outputs data as JSON with optional query/template filtering
func printJSON(cmd *cobra.Command, v any) error {
	return newFormatter(cmd).Output(v)
}

func printAction(cmd *cobra.Command, action, resource string, id int, name string) {
	if flags.Quiet || isJSON(cmd) {
		return
	}
	message := fmt.Sprintf("%s %s", action, resource)
	if id != 0 {
		message = fmt.Sprintf("%s #%d", message, id)
	}
	if name != "" {
		message = fmt.Sprintf("%s: %s", message, name)
	}
	_, _ = fmt.Fprintln(ioStreams(cmd).Out, message)
}

func maybeDryRun(cmd *cobra.Command, preview *dryrun.Preview) (bool, error) {
	if !dryrun.IsEnabled(cmd.Context()) {
		return false, nil
	}
	if preview == nil {
		preview = &dryrun.Preview{}
	}
	streams := ioStreams(cmd)
	if isJSON(cmd) {
		return true, preview.WriteJSON(streams.Out)
	}
	preview.Write(streams.Out)
	return true, nil
}

// formPreview describes a multipart request for --dry-run.
func formPreview(operation, resource, method, path string, form *api.Form) *dryrun.Preview {
	return &dryrun.Preview{
		Operation: operation,
		Resource:  resource,
		Method:    method,
		Path:      path,
		Transport: "multipart",
		Details:   form.Preview(),
	}
}

// bodyPreview describes a JSON request for --dry-run.
func bodyPreview(operation, resource, method, path string, body map[string]any) *dryrun.Preview {
	return &dryrun.Preview{
		Operation: operation,
		Resource:  resource,
		Method:    method,
		Path:      path,
		Transport: "json",
		Details:   body,
	}
}

func itemPath(collection string, id int) string {
	return fmt.Sprintf("%s%d/", collection, id)
}

type confirmOptions struct {
	Prompt        string
	CancelMessage string
	Force         bool
}

// confirmAction asks for a y/N answer on stdin. --yes and --force skip it;
// JSON output requires one of them.
func confirmAction(cmd *cobra.Command, opts confirmOptions) (bool, error) {
	if flags.Yes || opts.Force {
		return true, nil
	}
	if isJSON(cmd) {
		return false, fmt.Errorf("--force flag is required when using --output json")
	}

	streams := ioStreams(cmd)
	if opts.Prompt != "" {
		_, _ = fmt.Fprint(streams.ErrOut, opts.Prompt)
	}
	response, err := bufio.NewReader(streams.In).ReadString('\n')
	if err != nil && response == "" {
		if opts.CancelMessage != "" {
			_, _ = fmt.Fprintln(streams.ErrOut, opts.CancelMessage)
		}
		return false, nil
	}
	switch strings.ToLower(strings.TrimSpace(response)) {
	case "y", "yes", "o", "oui":
		return true, nil
	}
	if opts.CancelMessage != "" {
		_, _ = fmt.Fprintln(streams.ErrOut, opts.CancelMessage)
	}
	return false, nil
}

// readLine reads one line from the command's stdin.
func readLine(cmd *cobra.Command) (string, error) {
	line, err := bufio.NewReader(ioStreams(cmd).In).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parseIDArgs parses positional ids, accepting "12", "#12" and comma lists.
func parseIDArgs(args []string, resource string) ([]int, error) {
	var ids []int
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimPrefix(strings.TrimSpace(part), "#")
			if part == "" {
				continue
			}
			id, err := strconv.Atoi(part)
			if err != nil || id <= 0 {
				return nil, fmt.Errorf("invalid %s ID %q: must be a positive integer", resource, part)
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one %s ID is required", resource)
	}
	return ids, nil
}

func parseIDArg(arg, resource string) (int, error) {
	ids, err := parseIDArgs([]string{arg}, resource)
	if err != nil {
		return 0, err
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("expected a single %s ID, got %q", resource, arg)
	}
	return ids[0], nil
}

func intPtrIfChanged(cmd *cobra.Command, flag string, value int) *int {
	if cmd.Flags().Changed(flag) {
		return &value
	}
	return nil
}

func floatPtrIfChanged(cmd *cobra.Command, flag string, value float64) *float64 {
	if cmd.Flags().Changed(flag) {
		return &value
	}
	return nil
}

func boolPtrIfChanged(cmd *cobra.Command, flag string, value bool) *bool {
	if cmd.Flags().Changed(flag) {
		return &value
	}
	return nil
}

// loadImage reads the --image flag value, if any.
func loadImage(path string) (*api.File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	return api.LoadFile(path)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func refLabel(r api.Ref) string {
	if r.IsZero() {
		return "-"
	}
	if r.Name != "" {
		return r.Name
	}
	return strconv.Itoa(r.ID)
}

// colorEnabled returns true if color output should be used
func colorEnabled(cmd *cobra.Command) bool {
	switch flags.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		f, ok := ioStreams(cmd).Out.(*os.File)
		if !ok {
			return false
		}
		info, err := f.Stat()
		if err != nil {
			return false
		}
		return (info.Mode() & os.ModeCharDevice) != 0
	}
}

func colorize(cmd *cobra.Command, text, color string) string {
	if !colorEnabled(cmd) {
		return text
	}
	return color + text + colorReset
}

// errAlreadyHandled is a sentinel error indicating the error was already printed to stderr.
var errAlreadyHandled = errors.New("error already handled")

type handledError struct {
	err      error
	exitCode int
}

func (e *handledError) Error() string {
	return e.err.Error()
}

func (e *handledError) Unwrap() []error {
	return []error{errAlreadyHandled, e.err}
}

func (e *handledError) ExitCode() int {
	return e.exitCode
}

// RunE wraps a command function with enhanced error handling
func RunE(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err == nil {
			return nil
		}
		streams := ioStreams(cmd)
		if isJSON(cmd) {
			_ = outfmt.WriteJSON(streams.ErrOut, errorPayload(err))
		} else {
			_, _ = fmt.Fprint(streams.ErrOut, HandleError(err))
		}
		return &handledError{err: err, exitCode: ExitCode(err)}
	}
}

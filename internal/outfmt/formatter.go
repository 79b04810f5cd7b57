package outfmt

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/stockpro/stockpro-cli/internal/filter"
)

// Formatter handles output formatting for commands.
type Formatter struct {
	ctx       context.Context
	out       io.Writer
	errOut    io.Writer
	tabWriter *tabwriter.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(ctx context.Context, out, errOut io.Writer) *Formatter {
	return &Formatter{
		ctx:       ctx,
		out:       out,
		errOut:    errOut,
		tabWriter: tabwriter.NewWriter(out, 0, 4, 2, ' ', 0),
	}
}

// Output writes data in the context's structured format after applying the
// query and template. It is a no-op in text mode.
func (f *Formatter) Output(data any) error {
	if !IsJSON(f.ctx) {
		return nil
	}
	result, err := ApplyQuery(data, GetQuery(f.ctx))
	if err != nil {
		return err
	}
	if tmpl := GetTemplate(f.ctx); tmpl != "" {
		// Templates address fields by their JSON names.
		generic, err := filter.ToGeneric(result)
		if err != nil {
			return err
		}
		return WriteTemplate(f.out, generic, tmpl)
	}
	if IsJSONL(f.ctx) {
		return WriteJSONL(f.out, result)
	}
	return WriteJSONMaybeCompact(f.out, result, IsCompact(f.ctx))
}

// StartTable writes table headers. Returns true if in text mode.
func (f *Formatter) StartTable(headers []string) bool {
	if IsJSON(f.ctx) {
		return false
	}
	f.Row(headers...)
	return true
}

// Row writes a single row to the table.
func (f *Formatter) Row(columns ...string) {
	_, _ = fmt.Fprintln(f.tabWriter, strings.Join(columns, "\t"))
}

// EndTable flushes the table output.
func (f *Formatter) EndTable() error {
	return f.tabWriter.Flush()
}

// Field writes an aligned "label: value" line for detail views. Call
// EndTable once all fields are written.
func (f *Formatter) Field(label string, value any) {
	_, _ = fmt.Fprintf(f.tabWriter, "%s:\t%v\n", label, value)
}

// Empty writes a message to stderr indicating no results.
func (f *Formatter) Empty(message string) {
	_, _ = fmt.Fprintln(f.errOut, message)
}

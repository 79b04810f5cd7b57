package cmd

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/api"
	"github.com/stockpro/stockpro-cli/internal/iocontext"
	"github.com/stockpro/stockpro-cli/internal/outfmt"
)

// newTestCmd returns a bare command whose context carries stdin and an
// output mode, for exercising helpers outside Execute.
func newTestCmd(stdin string, mode outfmt.Mode) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	ctx := iocontext.WithIO(context.Background(), &iocontext.IO{
		In:     strings.NewReader(stdin),
		Out:    &out,
		ErrOut: &errOut,
	})
	ctx = outfmt.WithMode(ctx, mode)
	cmd := &cobra.Command{Use: "test"}
	cmd.SetContext(ctx)
	return cmd, &out, &errOut
}

func TestParseIDArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []int
		wantErr string
	}{
		{name: "single", args: []string{"12"}, want: []int{12}},
		{name: "hash prefix", args: []string{"#7"}, want: []int{7}},
		{name: "comma list", args: []string{"1,2", "3"}, want: []int{1, 2, 3}},
		{name: "blank parts skipped", args: []string{"4,,5,"}, want: []int{4, 5}},
		{name: "zero", args: []string{"0"}, wantErr: `invalid product ID "0"`},
		{name: "word", args: []string{"riz"}, wantErr: `invalid product ID "riz"`},
		{name: "nothing", args: []string{","}, wantErr: "at least one product ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIDArgs(tt.args, "product")
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseIDArg_RejectsLists(t *testing.T) {
	if _, err := parseIDArg("1,2", "store"); err == nil {
		t.Fatal("expected error for a list")
	}
	id, err := parseIDArg("#9", "store")
	if err != nil || id != 9 {
		t.Fatalf("parseIDArg(#9) = %d, %v", id, err)
	}
}

func TestConfirmAction(t *testing.T) {
	flags = defaultFlags()

	tests := []struct {
		name  string
		stdin string
		force bool
		want  bool
	}{
		{name: "yes", stdin: "y\n", want: true},
		{name: "french yes", stdin: "oui\n", want: true},
		{name: "no", stdin: "n\n", want: false},
		{name: "empty answer", stdin: "\n", want: false},
		{name: "eof", stdin: "", want: false},
		{name: "force", stdin: "", force: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _, errOut := newTestCmd(tt.stdin, outfmt.Text)
			got, err := confirmAction(cmd, confirmOptions{Prompt: "Delete? [y/N] ", CancelMessage: "Cancelled.", Force: tt.force})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if !tt.force && !strings.Contains(errOut.String(), "Delete? [y/N]") {
				t.Errorf("expected prompt on stderr, got %q", errOut.String())
			}
		})
	}
}

func TestConfirmAction_JSONRequiresForce(t *testing.T) {
	flags = defaultFlags()
	cmd, _, _ := newTestCmd("y\n", outfmt.JSON)
	if _, err := confirmAction(cmd, confirmOptions{}); err == nil {
		t.Fatal("expected error without --force in JSON mode")
	}
}

func TestRefLabel(t *testing.T) {
	if got := refLabel(api.Ref{}); got != "-" {
		t.Errorf("empty ref = %q", got)
	}
	if got := refLabel(api.Ref{ID: 3}); got != "3" {
		t.Errorf("id-only ref = %q", got)
	}
	if got := refLabel(api.Ref{ID: 3, Name: "Plateau"}); got != "Plateau" {
		t.Errorf("named ref = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Livraison   reçue\nce matin", 50); got != "Livraison reçue ce matin" {
		t.Errorf("whitespace not collapsed: %q", got)
	}
	if got := truncate("Inventaire complet du magasin", 12); got != "Inventair..." {
		t.Errorf("unexpected truncation: %q", got)
	}
}

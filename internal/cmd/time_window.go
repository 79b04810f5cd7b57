package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockpro/stockpro-cli/internal/when"
)

// timeWindow holds --since/--until and filters records by their timestamp.
type timeWindow struct {
	since, until string
	from, to     time.Time
}

func (w *timeWindow) register(cmd *cobra.Command, what string) {
	cmd.Flags().StringVar(&w.since, "since", "", fmt.Sprintf("Only show %s at or after this time (e.g. today, hier, 2h ago, 2024-05-02)", what))
	cmd.Flags().StringVar(&w.until, "until", "", fmt.Sprintf("Only show %s before this time", what))
}

func (w *timeWindow) parse(now time.Time) error {
	w.from, w.to = time.Time{}, time.Time{}
	if w.since != "" {
		t, err := when.Parse(w.since, now)
		if err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
		w.from = t
	}
	if w.until != "" {
		t, err := when.Parse(w.until, now)
		if err != nil {
			return fmt.Errorf("invalid --until: %w", err)
		}
		w.to = t
	}
	if !w.from.IsZero() && !w.to.IsZero() && !w.from.Before(w.to) {
		return fmt.Errorf("--since must be before --until")
	}
	return nil
}

func (w *timeWindow) active() bool {
	return !w.from.IsZero() || !w.to.IsZero()
}

// contains reports whether a backend timestamp falls in the window. Records
// without a readable timestamp are dropped once a bound is set.
func (w *timeWindow) contains(raw string) bool {
	if !w.active() {
		return true
	}
	t, ok := when.ParseTimestamp(raw)
	if !ok {
		return false
	}
	if !w.from.IsZero() && t.Before(w.from) {
		return false
	}
	if !w.to.IsZero() && !t.Before(w.to) {
		return false
	}
	return true
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultConcurrency is the default number of concurrent workers
const DefaultConcurrency = 5

// BulkResult represents the outcome of a single bulk operation
type BulkResult struct {
	ID      int
	Success bool
	Error   error
	Data    any
}

// runBulkOperation executes operations concurrently with bounded parallelism.
// Results are returned in id order.
func runBulkOperation[T any](
	ctx context.Context,
	ids []int,
	concurrency int64,
	progress bool,
	errOut io.Writer,
	operation func(ctx context.Context, id int) (T, error),
) []BulkResult {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if errOut == nil {
		errOut = io.Discard
	}

	sem := semaphore.NewWeighted(concurrency)
	var mu sync.Mutex
	results := make([]BulkResult, 0, len(ids))
	total := len(ids)
	var done int64

	g, ctx := errgroup.WithContext(ctx)

	for _, id := range ids {
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return nil // cancelled
			}
			defer sem.Release(1)

			if ctx.Err() != nil {
				return nil
			}

			data, err := operation(ctx, id)

			mu.Lock()
			if err != nil {
				results = append(results, BulkResult{ID: id, Error: err})
			} else {
				results = append(results, BulkResult{ID: id, Success: true, Data: data})
			}
			current := atomic.AddInt64(&done, 1)
			if progress {
				_, _ = fmt.Fprintf(errOut, "\rProcessed %d/%d", current, total)
			}
			mu.Unlock()

			// individual failures never cancel the others
			return nil
		})
	}

	_ = g.Wait()

	if progress && total > 0 {
		_, _ = fmt.Fprintf(errOut, "\rProcessed %d/%d\n", atomic.LoadInt64(&done), total)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results
}

// countResults returns success and failure counts from bulk results
func countResults(results []BulkResult) (success, failure int) {
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failure++
		}
	}
	return
}

type bulkItem struct {
	ID    int    `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type bulkSummary struct {
	Succeeded int        `json:"succeeded"`
	Failed    int        `json:"failed"`
	Results   []bulkItem `json:"results"`
}

// bulkFailedError reports a bulk run where at least one item failed.
type bulkFailedError struct {
	Failed int
	Total  int
}

func (e *bulkFailedError) Error() string {
	return fmt.Sprintf("%d of %d operations failed", e.Failed, e.Total)
}

// reportBulk prints a bulk summary and returns an error when any item failed.
func reportBulk(cmd *cobra.Command, action, resource string, results []BulkResult) error {
	success, failure := countResults(results)

	if isJSON(cmd) {
		summary := bulkSummary{Succeeded: success, Failed: failure, Results: make([]bulkItem, 0, len(results))}
		for _, r := range results {
			item := bulkItem{ID: r.ID, OK: r.Success}
			if r.Error != nil {
				item.Error = r.Error.Error()
			}
			summary.Results = append(summary.Results, item)
		}
		if err := printJSON(cmd, summary); err != nil {
			return err
		}
	} else {
		streams := ioStreams(cmd)
		for _, r := range results {
			if r.Success {
				printAction(cmd, action, resource, r.ID, "")
				continue
			}
			_, _ = fmt.Fprintf(streams.ErrOut, "%s #%d: %s\n", resource, r.ID, colorize(cmd, r.Error.Error(), colorRed))
		}
		if !flags.Quiet {
			_, _ = fmt.Fprintf(streams.Out, "%d succeeded, %d failed\n", success, failure)
		}
	}

	if failure > 0 {
		return &bulkFailedError{Failed: failure, Total: len(results)}
	}
	return nil
}

// Package resolve turns store, supplier, product and user names typed on
// the command line into backend ids, using fuzzy matching.
package resolve

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Named represents any record with an ID and display name. Aliases (a
// product reference, a user email) only take part in exact matching.
type Named struct {
	ID      int
	Name    string
	Aliases []string
}

// Match is a fuzzy match result with score.
type Match struct {
	ID    int
	Name  string
	Score int
}

var (
	ErrEmptyQuery = errors.New("empty search query")
	ErrEmptyItems = errors.New("no items to match against")
)

// AmbiguousError indicates multiple candidates matched equally well.
// Matches are sorted best-first and capped.
type AmbiguousError struct {
	Query   string
	Matches []Match
}

func (e *AmbiguousError) Error() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "ambiguous match for %q", e.Query)
	if len(e.Matches) > 0 {
		b.WriteString(", candidates:")
		for _, m := range e.Matches {
			_, _ = fmt.Fprintf(&b, "\n  %d: %s", m.ID, m.Name)
		}
	}
	return b.String()
}

// NotFoundError reports a query that matched nothing.
type NotFoundError struct {
	Kind  string
	Query string
}

func (e *NotFoundError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("no match found for %q", e.Query)
	}
	return fmt.Sprintf("no %s matches %q", e.Kind, e.Query)
}

type namedSourceLower []Named

func (s namedSourceLower) String(i int) string { return strings.ToLower(s[i].Name) }
func (s namedSourceLower) Len() int            { return len(s) }

// FuzzyMatch finds the best matching item by name and returns its ID.
//
// Behavior:
// - Empty query or empty items are errors.
// - Exact case-insensitive matches on name or alias win over fuzzy matches.
// - Case-insensitive fuzzy matching on the name.
// - If the top two fuzzy results tie on score, returns *AmbiguousError.
func FuzzyMatch(query string, items []Named) (int, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, ErrEmptyQuery
	}
	if len(items) == 0 {
		return 0, ErrEmptyItems
	}

	for _, item := range items {
		if strings.EqualFold(item.Name, query) {
			return item.ID, nil
		}
		for _, alias := range item.Aliases {
			if alias != "" && strings.EqualFold(alias, query) {
				return item.ID, nil
			}
		}
	}

	results := fuzzy.FindFrom(strings.ToLower(query), namedSourceLower(items))
	if len(results) == 0 {
		return 0, &NotFoundError{Query: query}
	}
	if len(results) > 1 && results[0].Score == results[1].Score {
		return 0, &AmbiguousError{
			Query:   query,
			Matches: buildMatches(items, results, 5),
		}
	}
	return items[results[0].Index].ID, nil
}

// FuzzyMatchAll returns up to limit matches ranked by score (best first).
func FuzzyMatchAll(query string, items []Named, limit int) []Match {
	query = strings.TrimSpace(query)
	if query == "" || len(items) == 0 || limit <= 0 {
		return nil
	}

	results := fuzzy.FindFrom(strings.ToLower(query), namedSourceLower(items))
	return buildMatches(items, results, limit)
}

// ParseID accepts "12" or "#12" and reports whether query was an id.
func ParseID(query string) (int, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(query), "#")
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// IDOrMatch returns query as an id when it is numeric, otherwise the id of
// the best fuzzy match among the items returned by load. load is only called
// for non-numeric queries.
func IDOrMatch(kind, query string, load func() ([]Named, error)) (int, error) {
	if id, ok := ParseID(query); ok {
		return id, nil
	}
	items, err := load()
	if err != nil {
		return 0, err
	}
	id, err := FuzzyMatch(query, items)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			nf.Kind = kind
		}
		if errors.Is(err, ErrEmptyItems) {
			return 0, &NotFoundError{Kind: kind, Query: strings.TrimSpace(query)}
		}
		return 0, err
	}
	return id, nil
}

func buildMatches(items []Named, results fuzzy.Matches, limit int) []Match {
	if len(results) == 0 || limit <= 0 {
		return nil
	}
	if len(results) > limit {
		results = results[:limit]
	}
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			ID:    items[r.Index].ID,
			Name:  items[r.Index].Name,
			Score: r.Score,
		}
	}
	return matches
}

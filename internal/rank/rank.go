// Package rank orders catalog entries against user input. Fuzzy match
// quality comes first, then a prefix bonus, then launch recency from the
// history ledger as the tie-breaker.
package rank

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/flingdev/fling/internal/catalog"
)

// prefixBonus rewards matches whose display name starts with the query.
// It is large enough to beat most pure-fuzzy scores, which is the point:
// typing "fi" should surface Firefox before some scattered f…i match.
const prefixBonus = 100

// Options tunes the ranking. Zero values mean no minimum score, no prefix
// preference and no result limit.
type Options struct {
	MinScore     int
	PreferPrefix bool
	Limit        int
}

// Match pairs an app with its final score.
type Match struct {
	App   *catalog.App
	Score int
}

// appSource adapts the catalog to the fuzzy matcher.
type appSource []catalog.App

func (s appSource) Len() int            { return len(s) }
func (s appSource) String(i int) string { return s[i].SearchText() }

// Rank scores apps against query. With an empty query it returns the
// most recently launched apps first, then the rest in catalog order,
// which is what a just-opened picker should show.
func Rank(query string, apps []catalog.App, history map[string]uint64, opts Options) []Match {
	var matches []Match
	if query == "" {
		matches = recentFirst(apps, history)
	} else {
		matches = fuzzyRank(query, apps, history, opts)
	}

	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	return matches
}

func recentFirst(apps []catalog.App, history map[string]uint64) []Match {
	matches := make([]Match, len(apps))
	for i := range apps {
		matches[i] = Match{App: &apps[i]}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return history[matches[i].App.Name] > history[matches[j].App.Name]
	})
	return matches
}

func fuzzyRank(query string, apps []catalog.App, history map[string]uint64, opts Options) []Match {
	results := fuzzy.FindFrom(query, appSource(apps))

	queryLower := strings.ToLower(query)
	var matches []Match
	for _, r := range results {
		if r.Score < opts.MinScore {
			continue
		}
		app := &apps[r.Index]
		score := r.Score
		if opts.PreferPrefix && strings.HasPrefix(strings.ToLower(app.Name), queryLower) {
			score += prefixBonus
		}
		matches = append(matches, Match{App: app, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		// Equal scores: more recently launched first.
		return history[matches[i].App.Name] > history[matches[j].App.Name]
	})
	return matches
}

// Package ranking orders every catalog body by habitability score.
//
// Ordering: score DESC, then name ASC (byte order, deterministic). Bodies
// with the same score share a rank and the next distinct score takes the
// next consecutive rank.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"github.com/okian/habitat/internal/domain/catalog"
	"github.com/okian/habitat/internal/domain/habitability"
)

// Entry is one leaderboard row.
type Entry struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Score int    `json:"score"`
	// PotentialHabitability is the catalog's published index, zero for
	// known planets.
	PotentialHabitability int `json:"potentialHabitability,omitempty"`
}

// Leaderboard is an immutable ranking built once from a catalog.
type Leaderboard struct {
	entries []Entry
	byName  map[string]int
}

// less reports whether a ranks before b.
func less(a, b Entry) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Name < b.Name
}

// New scores every body in c and ranks them.
func New(c *catalog.Catalog) *Leaderboard {
	bodies := c.Bodies()
	entries := make([]Entry, 0, len(bodies))
	for _, b := range bodies {
		entries = append(entries, Entry{
			Name:                  b.Name,
			Kind:                  b.Kind,
			Score:                 habitability.Score(b.Parameters),
			PotentialHabitability: b.PotentialHabitability,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return less(entries[i], entries[j]) })
	assignRanksWithTies(entries)

	byName := make(map[string]int, len(entries))
	for i, e := range entries {
		byName[strings.ToLower(e.Name)] = i
	}
	return &Leaderboard{entries: entries, byName: byName}
}

// TopN returns the first n entries, or all of them when n exceeds Count.
func (l *Leaderboard) TopN(n int) ([]Entry, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	n = min(n, len(l.entries))
	return append([]Entry(nil), l.entries[:n]...), nil
}

// Rank returns the entry for a body, ignoring case.
func (l *Leaderboard) Rank(name string) (Entry, error) {
	i, ok := l.byName[strings.ToLower(name)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return l.entries[i], nil
}

// Count returns the number of ranked bodies.
func (l *Leaderboard) Count() int {
	return len(l.entries)
}

// assignRanksWithTies gives equal scores the same rank and advances the rank
// by one for each distinct score.
func assignRanksWithTies(entries []Entry) {
	rank := 0
	for i := range entries {
		if i == 0 || entries[i].Score != entries[i-1].Score {
			rank++
		}
		entries[i].Rank = rank
	}
}

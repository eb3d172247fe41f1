package notes

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

const (
	SearchSubstring = "substring"
	SearchFuzzy     = "fuzzy"
)

// Filter returns the notes whose haystack contains the trimmed, lower-cased
// query, in their original order. An empty query returns notes unchanged.
func Filter(notes []Note, query string) []Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return notes
	}
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if strings.Contains(n.Haystack(), q) {
			out = append(out, n)
		}
	}
	return out
}

// FuzzyFilter ranks notes by fuzzy match score against the query, best first.
func FuzzyFilter(notes []Note, query string) []Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return notes
	}
	targets := make([]string, len(notes))
	for i, n := range notes {
		targets[i] = n.Haystack()
	}
	matches := fuzzy.Find(q, targets)
	out := make([]Note, 0, len(matches))
	for _, m := range matches {
		out = append(out, notes[m.Index])
	}
	return out
}

// FilterFunc picks the filter for a search mode; unknown modes fall back to
// substring matching.
func FilterFunc(mode string) func([]Note, string) []Note {
	if mode == SearchFuzzy {
		return FuzzyFilter
	}
	return Filter
}

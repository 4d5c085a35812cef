package services

import (
	"sort"
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const similarityThreshold = 0.6

// normalizeInput lowercases and transliterates text for matching.
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

// calculateSimilarity is 1 minus the normalised levenshtein distance.
func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/float64(maxLen)
}

// matchScore is zero when name does not match query at all.
func matchScore(query, name string) float64 {
	switch {
	case name == query:
		return 4
	case strings.HasPrefix(name, query):
		return 3
	case strings.Contains(name, query):
		return 2
	}
	best := calculateSimilarity(query, name)
	for _, word := range strings.Fields(name) {
		if s := calculateSimilarity(query, word); s > best {
			best = s
		}
	}
	if best > similarityThreshold {
		return best
	}
	return 0
}

// FuzzyFilter keeps the items whose name matches query and orders them by
// match quality, the closest name first.
func FuzzyFilter[T any](items []T, name func(*T) string, query string) []T {
	q := normalizeInput(query)
	if q == "" {
		return items
	}

	type scored struct {
		item  T
		name  string
		score float64
	}
	var matched []scored
	for i := range items {
		n := normalizeInput(name(&items[i]))
		if s := matchScore(q, n); s > 0 {
			matched = append(matched, scored{item: items[i], name: n, score: s})
		}
	}
	if len(matched) == 0 {
		return []T{}
	}

	names := make([]string, len(matched))
	for i, m := range matched {
		names[i] = m.name
	}
	closest := closestmatch.New(names, []int{2, 3}).Closest(q)
	for i := range matched {
		if matched[i].name == closest {
			matched[i].score += 10
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})
	out := make([]T, len(matched))
	for i, m := range matched {
		out[i] = m.item
	}
	return out
}

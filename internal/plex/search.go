package plex

import (
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// minScore is the lowest similarity kept by Search.
const minScore = 0.8

// Search ranks items by how well their title matches query. An empty query
// returns items unchanged. limit <= 0 means no limit.
func Search(items []InventoryItem, query string, limit int) []InventoryItem {
	q := normalizeTitle(query)
	if q == "" {
		return items
	}

	type scored struct {
		item  InventoryItem
		score float64
	}
	var matches []scored
	for _, it := range items {
		if s := titleScore(q, normalizeTitle(it.Title)); s >= minScore {
			matches = append(matches, scored{it, s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].item.Title < matches[j].item.Title
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]InventoryItem, len(matches))
	for i, m := range matches {
		out[i] = m.item
	}
	return out
}

// titleScore compares the query to the whole title and to every run of
// title words as long as the query, keeping the best similarity.
func titleScore(q, title string) float64 {
	if title == "" {
		return 0
	}
	if strings.Contains(title, q) {
		return 1
	}

	best := float64(edlib.JaroWinklerSimilarity(q, title))
	qWords := len(strings.Fields(q))
	words := strings.Fields(title)
	for i := 0; i+qWords <= len(words); i++ {
		window := strings.Join(words[i:i+qWords], " ")
		if s := float64(edlib.JaroWinklerSimilarity(q, window)); s > best {
			best = s
		}
	}
	return best
}

// normalizeTitle lowercases, strips accents and punctuation, and collapses whitespace.
func normalizeTitle(s string) string {
	s = strings.ToLower(removeAccents(s))
	s = strings.NewReplacer("&", " and ", "-", " ", "'", "", ".", " ", ":", " ").Replace(s)

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

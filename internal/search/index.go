// Package search provides the fuzzy store index and the search/filter
// engine that drive the directory's listing pages.
package search

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/Jaxic/BookStoreDir-sub002/internal/models"
	"github.com/Jaxic/BookStoreDir-sub002/pkg/fingerprint"
)

// Index precondition errors. Querying before Build, or with entities the
// index has never seen, is a caller bug and fails loudly instead of
// returning wrong results.
var (
	ErrIndexNotBuilt = errors.New("search index has not been built")
	ErrIndexStale    = errors.New("search index is stale for the supplied dataset")
)

// DefaultThreshold is the match threshold on a 0 (exact) to 1 (no match)
// scale. Tuned so small misspellings still match while unrelated strings do
// not.
const DefaultThreshold = 0.3

// substringScore is assigned when the query appears verbatim inside a field.
// It outranks fuzzy matches but loses to exact field equality.
const substringScore = 0.1

type indexEntry struct {
	store models.ProcessedBookstore
	pos   int
	// fields holds the normalized name/address/city/province values.
	fields []string
}

type match struct {
	store models.ProcessedBookstore
	score float64
	pos   int
}

// Index is a fuzzy text index over store name, address, city, and province.
// Build it once per dataset snapshot and rebuild it whenever the dataset
// changes; there is no incremental update.
type Index struct {
	threshold   float64
	entries     []indexEntry
	known       map[string]struct{}
	fingerprint string
	built       bool
}

// NewIndex creates an index with the default match threshold.
func NewIndex() *Index {
	return NewIndexWithThreshold(DefaultThreshold)
}

// NewIndexWithThreshold creates an index with a custom match threshold.
func NewIndexWithThreshold(threshold float64) *Index {
	return &Index{threshold: threshold}
}

// Build replaces the index contents with the given dataset snapshot.
func (ix *Index) Build(stores []models.ProcessedBookstore) {
	entries := make([]indexEntry, 0, len(stores))
	known := make(map[string]struct{}, len(stores))
	placeIDs := make([]string, 0, len(stores))

	for i, store := range stores {
		fields := make([]string, 0, 4)

		for _, raw := range []string{store.Name, store.Address, store.City, store.Province} {
			if normalized := normalizeText(raw); normalized != "" {
				fields = append(fields, normalized)
			}
		}

		entries = append(entries, indexEntry{store: store, pos: i, fields: fields})
		known[store.PlaceID] = struct{}{}
		placeIDs = append(placeIDs, store.PlaceID)
	}

	ix.entries = entries
	ix.known = known
	ix.fingerprint = fingerprint.Dataset(placeIDs)
	ix.built = true
}

// Fingerprint returns the fingerprint of the dataset the index was built
// from, or "" before the first Build.
func (ix *Index) Fingerprint() string {
	return ix.fingerprint
}

// ensureCovers verifies the index was built from a superset of the supplied
// entities.
func (ix *Index) ensureCovers(stores []models.ProcessedBookstore) error {
	if !ix.built {
		return ErrIndexNotBuilt
	}

	for _, store := range stores {
		if _, ok := ix.known[store.PlaceID]; !ok {
			return fmt.Errorf("%w: place_id %s is not indexed", ErrIndexStale, store.PlaceID)
		}
	}

	return nil
}

// rank scores every indexed store against the query and returns the matches
// ordered best-first. Ties keep dataset order.
func (ix *Index) rank(query string) []match {
	normalized := normalizeText(query)
	if normalized == "" {
		return nil
	}

	var matches []match

	for _, entry := range ix.entries {
		best := 1.0

		for _, field := range entry.fields {
			if score := fieldScore(normalized, field); score < best {
				best = score
			}
		}

		if best <= ix.threshold {
			matches = append(matches, match{store: entry.store, score: best, pos: entry.pos})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score < matches[j].score
		}

		return matches[i].pos < matches[j].pos
	})

	return matches
}

// fieldScore compares a normalized query against one normalized field.
// Exact equality scores 0, verbatim containment scores substringScore, and
// everything else scores by the best normalized edit distance over the whole
// field and its individual words.
func fieldScore(query, field string) float64 {
	if field == query {
		return 0
	}

	if strings.Contains(field, query) {
		return substringScore
	}

	best := 1.0

	candidates := strings.Fields(field)
	candidates = append(candidates, field)

	for _, candidate := range candidates {
		longest := len([]rune(candidate))
		if l := len([]rune(query)); l > longest {
			longest = l
		}

		if longest == 0 {
			continue
		}

		distance := levenshtein.ComputeDistance(query, candidate)
		if score := float64(distance) / float64(longest); score < best {
			best = score
		}
	}

	return best
}

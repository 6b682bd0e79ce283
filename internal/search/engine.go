package search

import (
	"context"
	"strings"

	"github.com/Jaxic/BookStoreDir-sub002/internal/geo"
	"github.com/Jaxic/BookStoreDir-sub002/internal/logger"
	"github.com/Jaxic/BookStoreDir-sub002/internal/models"
)

// MaxSuggestions caps the number of names returned by Suggestions.
const MaxSuggestions = 5

// FilterOptions is the compound filter applied to a candidate set. All
// active filters are AND-combined. Zero values disable a filter.
type FilterOptions struct {
	HasWebsite   bool
	MinRating    float64
	Province     string
	MaxDistance  float64 // kilometres; 0 disables the distance filter
	OpenWeekends bool
}

// Result is the outcome of a store search. Warnings records filters that
// were skipped (currently only the distance filter, when no location could
// be resolved) so callers are not silently degraded.
type Result struct {
	Stores   []models.ProcessedBookstore
	Warnings []string
}

// Engine answers search queries over a normalized dataset using a
// previously built Index.
type Engine struct {
	index          *Index
	locator        geo.LocationProvider
	log            *logger.Logger
	maxSuggestions int
}

// NewEngine creates an engine. locator may be nil when distance filtering is
// never used; an active distance filter then degrades the same way as a
// provider failure.
func NewEngine(index *Index, locator geo.LocationProvider, log *logger.Logger) *Engine {
	return &Engine{
		index:          index,
		locator:        locator,
		log:            log,
		maxSuggestions: MaxSuggestions,
	}
}

// WithMaxSuggestions overrides the suggestion cap.
func (e *Engine) WithMaxSuggestions(n int) *Engine {
	if n > 0 {
		e.maxSuggestions = n
	}

	return e
}

// Suggestions returns up to the configured number of store names ranked
// best-first. An empty query yields an empty list. The index must have been
// built from a superset of entities; otherwise ErrIndexNotBuilt or
// ErrIndexStale is returned.
func (e *Engine) Suggestions(entities []models.ProcessedBookstore, query string) ([]string, error) {
	if strings.TrimSpace(query) == "" {
		return []string{}, nil
	}

	if err := e.index.ensureCovers(entities); err != nil {
		return nil, err
	}

	allowed := placeIDSet(entities)
	names := make([]string, 0, e.maxSuggestions)

	for _, m := range e.index.rank(query) {
		if _, ok := allowed[m.store.PlaceID]; !ok {
			continue
		}

		names = append(names, m.store.Name)
		if len(names) == e.maxSuggestions {
			break
		}
	}

	return names, nil
}

// SearchStores narrows entities by the fuzzy query (ranking order) when one
// is supplied, then applies the filters as a final pass that never reorders.
// With an empty query the candidates keep their original dataset order.
//
// The caller's location is resolved only when the distance filter is active.
// Resolution failure is recoverable: the distance filter is skipped, a
// warning is recorded on the result, and every other filter still applies.
func (e *Engine) SearchStores(ctx context.Context, entities []models.ProcessedBookstore, query string, filters FilterOptions) (*Result, error) {
	candidates := entities

	if strings.TrimSpace(query) != "" {
		if err := e.index.ensureCovers(entities); err != nil {
			return nil, err
		}

		allowed := placeIDSet(entities)
		candidates = make([]models.ProcessedBookstore, 0, len(entities))

		for _, m := range e.index.rank(query) {
			if _, ok := allowed[m.store.PlaceID]; ok {
				candidates = append(candidates, m.store)
			}
		}
	}

	result := &Result{}

	var userLocation *models.Coordinates

	if filters.MaxDistance > 0 {
		userLocation = e.resolveLocation(ctx, result)
	}

	for _, store := range candidates {
		if filters.HasWebsite && !store.HasWebsite() {
			continue
		}

		if filters.MinRating > 0 {
			if store.RatingInfo == nil || store.RatingInfo.Rating < filters.MinRating {
				continue
			}
		}

		if filters.Province != "" && store.Province != filters.Province {
			continue
		}

		if filters.MaxDistance > 0 && userLocation != nil {
			// Distance cannot be computed without coordinates; exclude.
			if store.Coordinates == nil {
				continue
			}

			if geo.Haversine(*userLocation, *store.Coordinates) > filters.MaxDistance {
				continue
			}
		}

		if filters.OpenWeekends && !store.IsOpenWeekends() {
			continue
		}

		result.Stores = append(result.Stores, store)
	}

	return result, nil
}

// resolveLocation performs the single location lookup for a search call.
// Any failure downgrades to a warning and a nil location.
func (e *Engine) resolveLocation(ctx context.Context, result *Result) *models.Coordinates {
	if e.locator == nil {
		result.Warnings = append(result.Warnings, "distance filter skipped: no location provider configured")

		return nil
	}

	location, err := e.locator.Current(ctx)
	if err != nil {
		if e.log != nil {
			e.log.Warn("location unavailable, distance filter skipped", "error", err)
		}

		result.Warnings = append(result.Warnings, "distance filter skipped: location unavailable")

		return nil
	}

	return &location
}

func placeIDSet(stores []models.ProcessedBookstore) map[string]struct{} {
	set := make(map[string]struct{}, len(stores))

	for _, store := range stores {
		set[store.PlaceID] = struct{}{}
	}

	return set
}

// Package normalize maps validated raw records into display-ready bookstore
// entities. The transformation is pure: the same record always produces the
// same entity, and malformed numeric values drop the derived field instead
// of failing.
package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/Jaxic/BookStoreDir-sub002/internal/models"
	"github.com/Jaxic/BookStoreDir-sub002/pkg/textutil"
)

// Normalizer transforms raw records into ProcessedBookstore entities.
type Normalizer struct{}

// NewNormalizer creates a new normalizer instance.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeAll normalizes records in order.
func (n *Normalizer) NormalizeAll(records []models.RawBookstoreRecord) []models.ProcessedBookstore {
	stores := make([]models.ProcessedBookstore, 0, len(records))

	for _, rec := range records {
		stores = append(stores, n.Normalize(rec))
	}

	return stores
}

// Normalize converts one raw record into its display entity.
func (n *Normalizer) Normalize(rec models.RawBookstoreRecord) models.ProcessedBookstore {
	store := models.ProcessedBookstore{
		Name:     rec.Name,
		Address:  rec.Address,
		City:     rec.City,
		Province: rec.Province,
		Zip:      rec.Zip,
		Phone:    rec.Phone,
		Website:  rec.Website,
		Email:    rec.Email,

		Lat: rec.Lat,
		Lng: rec.Lng,

		Hours:  make(map[string]string),
		Status: normalizeStatus(rec.Status),

		PhotosURL: rec.PhotosURL,
		PlaceID:   rec.PlaceID,

		FormattedAddress: textutil.JoinNonEmpty(", ", rec.Address, rec.City, rec.Province, rec.Zip),
	}

	store.Description = optional(rec.Description)
	store.PlaceURL = optional(rec.PlaceURL)
	store.StreetView = optional(rec.StreetView)

	// Coordinates exist only when both values parse as finite numbers.
	if lat, latOK := parseFinite(rec.Lat); latOK {
		if lng, lngOK := parseFinite(rec.Lng); lngOK {
			store.Coordinates = &models.Coordinates{Lat: lat, Lng: lng}
		}
	}

	if rating, ok := parseFinite(rec.Rating); ok {
		info := &models.RatingInfo{Rating: rating}

		if numReviews, err := strconv.Atoi(strings.TrimSpace(rec.NumReviews)); err == nil {
			info.NumReviews = numReviews
		}

		for _, raw := range rec.Reviews {
			if raw.Author == "" && raw.Text == "" {
				continue
			}

			info.Reviews = append(info.Reviews, models.Review{
				Author: raw.Author,
				Rating: raw.Rating,
				Time:   raw.Time,
				Text:   raw.Text,
			})
		}

		store.RatingInfo = info
	}

	for i, day := range models.Weekdays {
		if rec.Hours[i] != "" {
			store.Hours[day] = rec.Hours[i]
		}
	}

	return store
}

// normalizeStatus maps the raw status onto the closed status set. Matching is
// case-sensitive; anything unrecognized falls back to OPERATIONAL.
func normalizeStatus(raw string) models.StoreStatus {
	switch models.StoreStatus(raw) {
	case models.StatusClosedTemporarily:
		return models.StatusClosedTemporarily
	case models.StatusClosedPermanently:
		return models.StatusClosedPermanently
	default:
		return models.StatusOperational
	}
}

// parseFinite parses a strict decimal value, rejecting NaN and infinities.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

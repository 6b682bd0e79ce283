// Package models defines the bookstore data entities shared across the
// ingestion, normalization, and search layers.
package models

// StoreStatus is the closed set of operational states a store can be in.
type StoreStatus string

// Recognized store statuses. Source values outside this set normalize to
// StatusOperational.
const (
	StatusOperational       StoreStatus = "OPERATIONAL"
	StatusClosedTemporarily StoreStatus = "CLOSED_TEMPORARILY"
	StatusClosedPermanently StoreStatus = "CLOSED_PERMANENTLY"
)

// Weekdays lists the seven lowercase day names in source column order
// (mon_hours .. sun_hours).
var Weekdays = [7]string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// MaxReviewGroups is the number of flat review{N}_* column groups in the
// source CSV.
const MaxReviewGroups = 5

// RawReview is one review{N}_* column group, all values as text.
type RawReview struct {
	Author string `json:"author,omitempty"`
	Rating string `json:"rating,omitempty"`
	Time   string `json:"time,omitempty"`
	Text   string `json:"text,omitempty"`
}

// RawBookstoreRecord is one CSV row after shape validation. Every field stays
// text; numeric-looking values are parsed later by the normalizer.
type RawBookstoreRecord struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Province    string `json:"province"`
	Zip         string `json:"zip"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	Email       string `json:"email,omitempty"`

	Lat string `json:"lat"`
	Lng string `json:"lng"`

	Rating     string `json:"rating,omitempty"`
	NumReviews string `json:"num_reviews,omitempty"`
	PriceLevel string `json:"price_level,omitempty"`

	PlaceID    string `json:"place_id"`
	PlaceURL   string `json:"place_url,omitempty"`
	PhotosURL  string `json:"photos_url,omitempty"`
	StreetView string `json:"street_view,omitempty"`

	Status string `json:"status,omitempty"`

	// Hours holds the seven <day>_hours values in Weekdays order, verbatim.
	Hours [7]string `json:"hours"`

	// Reviews holds the review1..review5 column groups in source order.
	Reviews [MaxReviewGroups]RawReview `json:"reviews"`
}

// ValidationError pairs a 1-based data row index (header row = 0) with the
// failure description. Data carries the raw row mapping when the row was
// parseable but schema-invalid, and stays nil for malformed rows.
type ValidationError struct {
	Row     int               `json:"row"`
	Data    map[string]string `json:"data,omitempty"`
	Message string            `json:"message"`
}

// Coordinates is a parsed lat/lng pair. It only exists when both values
// parsed as finite decimals.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Review is one display-ready review entity.
type Review struct {
	Author string `json:"author,omitempty"`
	Rating string `json:"rating,omitempty"`
	Time   string `json:"time,omitempty"`
	Text   string `json:"text,omitempty"`
}

// RatingInfo aggregates the parsed rating data. It is only present when the
// source rating value parsed successfully.
type RatingInfo struct {
	Rating     float64  `json:"rating"`
	NumReviews int      `json:"numReviews"`
	Reviews    []Review `json:"reviews,omitempty"`
}

// ProcessedBookstore is the normalized display entity consumed by the search
// engine and the page-generation layer.
//
// Phone, Website, Email, and PhotosURL default to "" when absent so callers
// can treat empty and missing uniformly. Description, PlaceURL, and
// StreetView stay optional pointers because the UI branches on their
// presence. Keep that asymmetry.
type ProcessedBookstore struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Province    string  `json:"province"`
	Zip         string  `json:"zip"`
	Phone       string  `json:"phone"`
	Website     string  `json:"website"`
	Email       string  `json:"email"`

	// Lat and Lng keep the original source strings; Coordinates carries the
	// parsed pair and is nil unless both values parsed as finite numbers.
	Lat         string       `json:"lat"`
	Lng         string       `json:"lng"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`

	RatingInfo *RatingInfo `json:"ratingInfo,omitempty"`

	// Hours maps lowercase weekday names to the day's verbatim hours text.
	// A blank source field leaves the key absent; "Closed" is a real value.
	Hours map[string]string `json:"hours"`

	Status StoreStatus `json:"status"`

	PhotosURL  string  `json:"photos_url"`
	PlaceID    string  `json:"place_id"`
	PlaceURL   *string `json:"place_url,omitempty"`
	StreetView *string `json:"street_view,omitempty"`

	FormattedAddress string `json:"formattedAddress"`
}

// HasWebsite reports whether the store has a non-empty website value.
func (b *ProcessedBookstore) HasWebsite() bool {
	return b.Website != ""
}

// IsOpenWeekends reports whether the store has Saturday or Sunday hours that
// are present and not the literal "Closed".
func (b *ProcessedBookstore) IsOpenWeekends() bool {
	for _, day := range []string{"saturday", "sunday"} {
		if h, ok := b.Hours[day]; ok && h != "Closed" {
			return true
		}
	}

	return false
}

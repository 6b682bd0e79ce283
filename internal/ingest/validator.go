package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Jaxic/BookStoreDir-sub002/internal/models"
)

// ErrMissingRequiredField indicates a row without one of the mandatory
// columns.
var ErrMissingRequiredField = errors.New("missing required field")

// requiredColumns are the mandatory CSV columns; everything else is optional.
var requiredColumns = []string{
	"name", "address", "city", "province", "zip", "lat", "lng", "place_id",
}

// weekdayColumns maps models.Weekdays positions to their CSV column names.
var weekdayColumns = [7]string{
	"mon_hours", "tue_hours", "wed_hours", "thu_hours", "fri_hours", "sat_hours", "sun_hours",
}

// Validator performs shape validation of raw CSV rows. It checks required
// fields are present and maps columns into a typed record; it never
// range-checks numeric-looking values, that is the normalizer's job.
type Validator struct{}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks one raw row and returns the typed record or an error
// naming the first missing required field.
func (v *Validator) Validate(row map[string]string) (models.RawBookstoreRecord, error) {
	for _, col := range requiredColumns {
		if strings.TrimSpace(row[col]) == "" {
			return models.RawBookstoreRecord{}, fmt.Errorf("%w: %s", ErrMissingRequiredField, col)
		}
	}

	rec := models.RawBookstoreRecord{
		Name:        row["name"],
		Description: row["description"],
		Address:     row["address"],
		City:        row["city"],
		Province:    row["province"],
		Zip:         row["zip"],
		Phone:       row["phone"],
		Website:     row["website"],
		Email:       row["email"],
		Lat:         row["lat"],
		Lng:         row["lng"],
		Rating:      row["rating"],
		NumReviews:  row["num_reviews"],
		PriceLevel:  row["price_level"],
		PlaceID:     row["place_id"],
		PlaceURL:    row["place_url"],
		PhotosURL:   row["photos_url"],
		StreetView:  row["street_view"],
		Status:      row["status"],
	}

	for i, col := range weekdayColumns {
		rec.Hours[i] = row[col]
	}

	for i := 0; i < models.MaxReviewGroups; i++ {
		prefix := fmt.Sprintf("review%d_", i+1)
		rec.Reviews[i] = models.RawReview{
			Author: row[prefix+"author"],
			Rating: row[prefix+"rating"],
			Time:   row[prefix+"time"],
			Text:   row[prefix+"text"],
		}
	}

	return rec, nil
}

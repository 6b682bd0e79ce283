package normalize

import (
	"reflect"
	"testing"

	"github.com/Jaxic/BookStoreDir-sub002/internal/models"
)

func baseRecord() models.RawBookstoreRecord {
	return models.RawBookstoreRecord{
		Name:     "A",
		Address:  "1 Main St",
		City:     "X",
		Province: "ON",
		Zip:      "A1A1A1",
		Lat:      "43.0",
		Lng:      "-79.0",
		PlaceID:  "p1",
	}
}

func TestNewNormalizer(t *testing.T) {
	n := NewNormalizer()
	if n == nil {
		t.Fatal("NewNormalizer returned nil")
	}
}

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer()

	store := n.Normalize(baseRecord())

	if store.Coordinates == nil {
		t.Fatal("Coordinates = nil, want parsed pair")
	}

	if store.Coordinates.Lat != 43.0 || store.Coordinates.Lng != -79.0 {
		t.Errorf("Coordinates = %+v, want {43 -79}", *store.Coordinates)
	}

	if store.FormattedAddress != "1 Main St, X, ON, A1A1A1" {
		t.Errorf("FormattedAddress = %q, want 1 Main St, X, ON, A1A1A1", store.FormattedAddress)
	}

	if store.Status != models.StatusOperational {
		t.Errorf("Status = %s, want OPERATIONAL", store.Status)
	}

	// Original strings are retained alongside the parsed pair.
	if store.Lat != "43.0" || store.Lng != "-79.0" {
		t.Errorf("Lat/Lng = %s/%s, want original strings", store.Lat, store.Lng)
	}
}

func TestNormalizer_Normalize_Coordinates(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name string
		lat  string
		lng  string
		want bool
	}{
		{name: "Both valid", lat: "43.65", lng: "-79.38", want: true},
		{name: "Lat blank", lat: "", lng: "-79.38", want: false},
		{name: "Lng blank", lat: "43.65", lng: "", want: false},
		{name: "Lat non-numeric", lat: "north", lng: "-79.38", want: false},
		{name: "Lng non-numeric", lat: "43.65", lng: "west", want: false},
		{name: "Infinity rejected", lat: "Inf", lng: "-79.38", want: false},
		{name: "NaN rejected", lat: "NaN", lng: "-79.38", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := baseRecord()
			rec.Lat = tt.lat
			rec.Lng = tt.lng

			store := n.Normalize(rec)

			if got := store.Coordinates != nil; got != tt.want {
				t.Errorf("Coordinates present = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizer_Normalize_RatingInfo(t *testing.T) {
	n := NewNormalizer()

	rec := baseRecord()
	rec.Rating = "4.5"
	rec.NumReviews = "10"
	rec.Reviews[0] = models.RawReview{Author: "Jo", Text: "Great"}

	store := n.Normalize(rec)

	if store.RatingInfo == nil {
		t.Fatal("RatingInfo = nil, want parsed rating")
	}

	if store.RatingInfo.Rating != 4.5 {
		t.Errorf("Rating = %v, want 4.5", store.RatingInfo.Rating)
	}

	if store.RatingInfo.NumReviews != 10 {
		t.Errorf("NumReviews = %d, want 10", store.RatingInfo.NumReviews)
	}

	if len(store.RatingInfo.Reviews) != 1 {
		t.Fatalf("Reviews length = %d, want 1", len(store.RatingInfo.Reviews))
	}

	if store.RatingInfo.Reviews[0].Author != "Jo" {
		t.Errorf("Reviews[0].Author = %q, want Jo", store.RatingInfo.Reviews[0].Author)
	}
}

func TestNormalizer_Normalize_RatingEdgeCases(t *testing.T) {
	n := NewNormalizer()

	t.Run("Unparsable rating omits RatingInfo", func(t *testing.T) {
		rec := baseRecord()
		rec.Rating = "five stars"
		rec.NumReviews = "10"

		if store := n.Normalize(rec); store.RatingInfo != nil {
			t.Errorf("RatingInfo = %+v, want nil", store.RatingInfo)
		}
	})

	t.Run("Unparsable num_reviews defaults to 0", func(t *testing.T) {
		rec := baseRecord()
		rec.Rating = "4.0"
		rec.NumReviews = "many"

		store := n.Normalize(rec)
		if store.RatingInfo == nil || store.RatingInfo.NumReviews != 0 {
			t.Errorf("RatingInfo = %+v, want NumReviews 0", store.RatingInfo)
		}
	})

	t.Run("Review groups without author or text are skipped", func(t *testing.T) {
		rec := baseRecord()
		rec.Rating = "4.0"
		rec.Reviews[0] = models.RawReview{Rating: "5", Time: "yesterday"}
		rec.Reviews[1] = models.RawReview{Author: "Pat"}
		rec.Reviews[4] = models.RawReview{Text: "Lovely shop"}

		store := n.Normalize(rec)
		if len(store.RatingInfo.Reviews) != 2 {
			t.Fatalf("Reviews length = %d, want 2", len(store.RatingInfo.Reviews))
		}

		// Source order is preserved.
		if store.RatingInfo.Reviews[0].Author != "Pat" || store.RatingInfo.Reviews[1].Text != "Lovely shop" {
			t.Errorf("Reviews = %+v, want Pat then Lovely shop", store.RatingInfo.Reviews)
		}
	})
}

func TestNormalizer_Normalize_Hours(t *testing.T) {
	n := NewNormalizer()

	rec := baseRecord()
	rec.Hours[0] = "9-5"
	rec.Hours[5] = "Closed"
	// Sunday stays blank.

	store := n.Normalize(rec)

	if store.Hours["monday"] != "9-5" {
		t.Errorf("monday = %q, want 9-5", store.Hours["monday"])
	}

	// "Closed" is a value, distinct from absent.
	if got, ok := store.Hours["saturday"]; !ok || got != "Closed" {
		t.Errorf("saturday = %q (present %v), want Closed present", got, ok)
	}

	if _, ok := store.Hours["sunday"]; ok {
		t.Error("sunday present, want absent for blank source field")
	}

	if store.IsOpenWeekends() {
		t.Error("IsOpenWeekends = true, want false for Closed Saturday and absent Sunday")
	}

	rec.Hours[5] = "10-5"
	saturdayStore := n.Normalize(rec)
	if !saturdayStore.IsOpenWeekends() {
		t.Error("IsOpenWeekends = false, want true for Saturday 10-5")
	}
}

func TestNormalizer_Normalize_Status(t *testing.T) {
	n := NewNormalizer()

	tests := []struct {
		name string
		raw  string
		want models.StoreStatus
	}{
		{name: "Operational", raw: "OPERATIONAL", want: models.StatusOperational},
		{name: "Temporarily closed", raw: "CLOSED_TEMPORARILY", want: models.StatusClosedTemporarily},
		{name: "Permanently closed", raw: "CLOSED_PERMANENTLY", want: models.StatusClosedPermanently},
		{name: "Absent defaults", raw: "", want: models.StatusOperational},
		{name: "Unrecognized defaults", raw: "RENOVATING", want: models.StatusOperational},
		{name: "Case-sensitive fallback", raw: "closed_permanently", want: models.StatusOperational},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := baseRecord()
			rec.Status = tt.raw

			if got := n.Normalize(rec).Status; got != tt.want {
				t.Errorf("Status = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNormalizer_Normalize_DefaultingAsymmetry(t *testing.T) {
	n := NewNormalizer()

	store := n.Normalize(baseRecord())

	// Contact fields default to empty strings.
	if store.Phone != "" || store.Website != "" || store.Email != "" || store.PhotosURL != "" {
		t.Error("absent contact fields should default to empty strings")
	}

	// Optional fields stay nil.
	if store.Description != nil || store.PlaceURL != nil || store.StreetView != nil {
		t.Error("absent optional fields should stay nil")
	}

	rec := baseRecord()
	rec.Description = "Used and rare books"
	rec.PlaceURL = "https://maps.example/p1"

	store = n.Normalize(rec)
	if store.Description == nil || *store.Description != "Used and rare books" {
		t.Errorf("Description = %v, want pointer to source value", store.Description)
	}

	if store.PlaceURL == nil || *store.PlaceURL != "https://maps.example/p1" {
		t.Errorf("PlaceURL = %v, want pointer to source value", store.PlaceURL)
	}
}

func TestNormalizer_Normalize_FormattedAddressTrimsEmpty(t *testing.T) {
	n := NewNormalizer()

	rec := baseRecord()
	rec.City = ""
	rec.Zip = " "

	if got := n.Normalize(rec).FormattedAddress; got != "1 Main St, ON" {
		t.Errorf("FormattedAddress = %q, want 1 Main St, ON", got)
	}
}

func TestNormalizer_Normalize_Idempotent(t *testing.T) {
	n := NewNormalizer()

	rec := baseRecord()
	rec.Rating = "4.5"
	rec.NumReviews = "10"
	rec.Hours[2] = "10-6"
	rec.Reviews[0] = models.RawReview{Author: "Jo", Text: "Great"}

	first := n.Normalize(rec)
	second := n.Normalize(rec)

	if !reflect.DeepEqual(first, second) {
		t.Error("normalizing the same record twice produced different entities")
	}
}

func TestNormalizer_NormalizeAll_PreservesOrder(t *testing.T) {
	n := NewNormalizer()

	recA := baseRecord()
	recB := baseRecord()
	recB.Name = "B"
	recB.PlaceID = "p2"

	stores := n.NormalizeAll([]models.RawBookstoreRecord{recA, recB})

	if len(stores) != 2 {
		t.Fatalf("stores length = %d, want 2", len(stores))
	}

	if stores[0].PlaceID != "p1" || stores[1].PlaceID != "p2" {
		t.Errorf("order = %s, %s; want p1, p2", stores[0].PlaceID, stores[1].PlaceID)
	}
}

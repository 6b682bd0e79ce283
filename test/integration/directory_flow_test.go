package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Jaxic/BookStoreDir-sub002/internal/geo"
	"github.com/Jaxic/BookStoreDir-sub002/internal/ingest"
	"github.com/Jaxic/BookStoreDir-sub002/internal/models"
	"github.com/Jaxic/BookStoreDir-sub002/internal/normalize"
	"github.com/Jaxic/BookStoreDir-sub002/internal/search"
)

func loadFixture(t *testing.T) *ingest.Result {
	t.Helper()

	fixturePath := filepath.Join("..", "fixtures", "bookstores.csv")

	pipeline := ingest.NewPipeline(nil)

	result, err := pipeline.Run(fixturePath)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	return result
}

func TestDirectoryFlow_Ingestion(t *testing.T) {
	result := loadFixture(t)

	// Fixture has five data rows; the nameless one fails validation.
	if len(result.Records) != 4 {
		t.Fatalf("Records = %d, want 4", len(result.Records))
	}

	if len(result.Errors) != 1 {
		t.Fatalf("Errors = %d, want 1", len(result.Errors))
	}

	if result.Errors[0].Row != 4 {
		t.Errorf("Errors[0].Row = %d, want 4", result.Errors[0].Row)
	}

	if result.Errors[0].Data == nil {
		t.Error("Errors[0].Data = nil, want raw row mapping for schema failure")
	}

	if result.Records[0].PlaceID != "p1" || result.Records[3].PlaceID != "p5" {
		t.Errorf("record order = %s..%s, want p1..p5", result.Records[0].PlaceID, result.Records[3].PlaceID)
	}
}

func TestDirectoryFlow_NormalizeAndSearch(t *testing.T) {
	result := loadFixture(t)

	stores := normalize.NewNormalizer().NormalizeAll(result.Records)

	if len(stores) != 4 {
		t.Fatalf("stores = %d, want 4", len(stores))
	}

	byID := make(map[string]models.ProcessedBookstore, len(stores))
	for _, store := range stores {
		byID[store.PlaceID] = store
	}

	// p1 has full data.
	p1 := byID["p1"]
	if p1.Coordinates == nil {
		t.Error("p1.Coordinates = nil, want parsed pair")
	}

	if p1.RatingInfo == nil || len(p1.RatingInfo.Reviews) != 2 {
		t.Errorf("p1.RatingInfo = %+v, want rating with 2 reviews", p1.RatingInfo)
	}

	if p1.FormattedAddress != "1 Main St, Toronto, ON, A1A1A1" {
		t.Errorf("p1.FormattedAddress = %q", p1.FormattedAddress)
	}

	// p5 has an unparsable latitude, so no coordinates despite a valid lng.
	if byID["p5"].Coordinates != nil {
		t.Error("p5.Coordinates present, want nil for unparsable lat")
	}

	// p2 is weekend-closed, p1 is open Saturday.
	p2 := byID["p2"]
	if p2.IsOpenWeekends() {
		t.Error("p2.IsOpenWeekends = true, want false")
	}

	if !p1.IsOpenWeekends() {
		t.Error("p1.IsOpenWeekends = false, want true")
	}

	index := search.NewIndex()
	index.Build(stores)

	engine := search.NewEngine(index, geo.StaticProvider{
		Coords: models.Coordinates{Lat: 43.6532, Lng: -79.3832},
	}, nil)

	t.Run("Suggestions", func(t *testing.T) {
		names, err := engine.Suggestions(stores, "harbor")
		if err != nil {
			t.Fatalf("Suggestions failed: %v", err)
		}

		// One-letter misspelling still matches.
		if len(names) == 0 || names[0] != "Harbour Books" {
			t.Errorf("names = %v, want Harbour Books first", names)
		}
	})

	t.Run("Filtered search near Toronto", func(t *testing.T) {
		searchResult, err := engine.SearchStores(context.Background(), stores, "", search.FilterOptions{
			MaxDistance:  300,
			OpenWeekends: true,
		})
		if err != nil {
			t.Fatalf("SearchStores failed: %v", err)
		}

		// p1 (Toronto) and p3 (Kingston) are in range and open weekends;
		// p5 has no coordinates, p2 is both far and closed.
		if len(searchResult.Stores) != 2 {
			t.Fatalf("stores = %d, want 2", len(searchResult.Stores))
		}

		if searchResult.Stores[0].PlaceID != "p1" || searchResult.Stores[1].PlaceID != "p3" {
			t.Errorf("stores = %s, %s; want p1, p3",
				searchResult.Stores[0].PlaceID, searchResult.Stores[1].PlaceID)
		}
	})

	t.Run("Query with province filter", func(t *testing.T) {
		searchResult, err := engine.SearchStores(context.Background(), stores, "livres", search.FilterOptions{
			Province: "QC",
		})
		if err != nil {
			t.Fatalf("SearchStores failed: %v", err)
		}

		if len(searchResult.Stores) != 1 || searchResult.Stores[0].PlaceID != "p5" {
			t.Errorf("stores = %v, want just p5", searchResult.Stores)
		}
	})
}

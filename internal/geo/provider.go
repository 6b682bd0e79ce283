package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Jaxic/BookStoreDir-sub002/internal/models"
)

// ErrLocationUnavailable indicates the provider could not resolve a
// position. Callers treat this as recoverable and skip distance filtering.
var ErrLocationUnavailable = errors.New("location unavailable")

// LocationProvider resolves the caller's current position. Implementations
// apply their own timeout and report failure through an error rather than
// blocking indefinitely.
type LocationProvider interface {
	Current(ctx context.Context) (models.Coordinates, error)
}

// StaticProvider returns a fixed position. The CLI uses it when the caller
// passes explicit coordinates, and tests use it to avoid network access.
type StaticProvider struct {
	Coords models.Coordinates
}

// Current returns the configured position.
func (p StaticProvider) Current(_ context.Context) (models.Coordinates, error) {
	return p.Coords, nil
}

// HTTPProvider resolves the caller's approximate position from an IP
// geolocation endpoint returning JSON with lat and lng (or lon) fields.
type HTTPProvider struct {
	client *http.Client
	url    string
}

// NewHTTPProvider creates a provider for the given endpoint with an explicit
// request timeout.
func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		client: &http.Client{
			Timeout: timeout,
		},
		url: url,
	}
}

// Current performs a single lookup. There is no retry: a failed or timed-out
// request surfaces as ErrLocationUnavailable.
func (p *HTTPProvider) Current(ctx context.Context) (models.Coordinates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, http.NoBody)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, fmt.Errorf("%w: status %d", ErrLocationUnavailable, resp.StatusCode)
	}

	var body struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
		Lon float64 `json:"lon"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}

	lng := body.Lng
	if lng == 0 {
		lng = body.Lon
	}

	return models.Coordinates{Lat: body.Lat, Lng: lng}, nil
}

package photos

import (
	"context"
	"fmt"
	"net/url"

	"googlemaps.github.io/maps"
)

const placePhotoURL = "https://maps.googleapis.com/maps/api/place/photo"

// PlacesSource resolves a query through the Google Places API and returns the
// photo of the best-ranked result. Used when an Unsplash key is not available
// but a Maps key already is.
type PlacesSource struct {
	client *maps.Client
	apiKey string
}

func NewPlacesSource(apiKey string) (*PlacesSource, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesSource{client: client, apiKey: apiKey}, nil
}

func (s *PlacesSource) Search(ctx context.Context, query string) (string, error) {
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{Query: query})
	if err != nil {
		return "", fmt.Errorf("places api error: %w", err)
	}

	for _, result := range resp.Results {
		if len(result.Photos) == 0 {
			continue
		}
		q := url.Values{}
		q.Set("maxwidth", "1600")
		q.Set("photo_reference", result.Photos[0].PhotoReference)
		q.Set("key", s.apiKey)
		return placePhotoURL + "?" + q.Encode(), nil
	}
	return "", nil
}

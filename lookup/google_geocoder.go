// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/thomstrub/representapp/spatial"
)

const googleMapsBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GeocodeTimeout bounds a single geocoding call.
const GeocodeTimeout = 5 * time.Second

// GoogleMapsGeocoder uses Google Maps Geocoding API.
type GoogleMapsGeocoder struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleMapsGeocoder creates a new Google Maps geocoder.
func NewGoogleMapsGeocoder(apiKey string, opts *ClientOptions) *GoogleMapsGeocoder {
	return &GoogleMapsGeocoder{
		apiKey:     apiKey,
		baseURL:    googleMapsBaseURL,
		httpClient: newHTTPClient(GeocodeTimeout, nil, opts),
	}
}

type googleMapsResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
			LocationType string `json:"location_type"` // ROOFTOP, RANGE_INTERPOLATED, GEOMETRIC_CENTER, APPROXIMATE
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"` // OK, ZERO_RESULTS, etc.
	ErrorMessage string `json:"error_message"`
}

// Geocode resolves an address to its best-match coordinates.
//
// When the provider returns several candidate matches the first one wins.
// That is the documented policy: provider ordering is by confidence and no
// server-side disambiguation is attempted.
func (g *GoogleMapsGeocoder) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)

	reqURL := g.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{
			Kind:    KindUpstreamUnavailable,
			Message: "building geocoding request",
			Err:     err,
		}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &Error{
			Kind:    KindUpstreamUnavailable,
			Message: "geocoding request failed",
			Err:     err,
		}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Kind:    classifyHTTPStatus(resp.StatusCode),
			Message: fmt.Sprintf("google maps returned status %d", resp.StatusCode),
		}
	}

	var gmResp googleMapsResponse
	if err := json.NewDecoder(resp.Body).Decode(&gmResp); err != nil {
		return nil, &Error{
			Kind:    KindUpstreamUnavailable,
			Message: "decoding geocoding response",
			Err:     err,
		}
	}

	switch gmResp.Status {
	case "OK":
		// fall through to result extraction
	case "ZERO_RESULTS":
		return nil, &Error{
			Kind:    KindAddressNotFound,
			Message: "no geocoding results found for address",
		}
	case "OVER_QUERY_LIMIT":
		return nil, &Error{
			Kind:    KindRateLimited,
			Message: "google maps quota exceeded",
		}
	case "REQUEST_DENIED":
		return nil, &Error{
			Kind:    KindAuthFailure,
			Message: "google maps rejected the API key",
		}
	default:
		return nil, &Error{
			Kind:    KindUpstreamUnavailable,
			Message: fmt.Sprintf("google maps status: %s", gmResp.Status),
		}
	}

	if len(gmResp.Results) == 0 {
		return nil, &Error{
			Kind:    KindAddressNotFound,
			Message: "no geocoding results found for address",
		}
	}

	result := gmResp.Results[0]

	// Confidence derives from location_type but never changes which match
	// is selected.
	confidence := "low"

	switch result.Geometry.LocationType {
	case "ROOFTOP", "RANGE_INTERPOLATED":
		confidence = "high"
	case "GEOMETRIC_CENTER":
		confidence = "medium"
	case "APPROXIMATE":
		confidence = "low"
	}

	return &GeocodeResult{
		FormattedAddress: result.FormattedAddress,
		Point: spatial.Point{
			Lat: result.Geometry.Location.Lat,
			Lng: result.Geometry.Location.Lng,
		},
		Confidence: confidence,
		Provider:   "google_maps",
	}, nil
}

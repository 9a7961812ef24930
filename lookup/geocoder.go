// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"context"

	"github.com/thomstrub/representapp/spatial"
)

// GeocodeResult represents a geocoding result from any provider.
type GeocodeResult struct {
	FormattedAddress string
	Point            spatial.Point
	Confidence       string // high, medium, low
	Provider         string
}

// Geocoder interface for different geocoding providers.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
}

// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

// Package lookup resolves a street address into a deduplicated list of
// elected representatives grouped by government level by chaining a
// geocoding provider and a civic-data provider.
package lookup

import (
	"context"
	"log"
	"time"
)

// Resolver runs the resolution pipeline. It holds no per-request state:
// every call to Resolve is an independent, stateless pass through the
// stages, and there is no caching anywhere in the pipeline.
type Resolver struct {
	geocoder Geocoder
	civic    CivicDataClient
}

// NewResolver creates a resolver over the two external adapters.
func NewResolver(geocoder Geocoder, civic CivicDataClient) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		civic:    civic,
	}
}

// Resolve turns one address string into one well-formed response, or one
// classified error. The two outbound calls are strictly sequential: the
// coordinates from geocoding are a precondition for the civic lookup, and
// a failure in a stage is always attributable to that stage.
func (r *Resolver) Resolve(ctx context.Context, address string) (*Response, error) {
	start := time.Now()

	if err := validateAddress(address); err != nil {
		return nil, err
	}

	address = sanitizeAddress(address)

	gctx, cancelGeocode := context.WithTimeout(ctx, GeocodeTimeout)
	defer cancelGeocode()

	geo, err := r.geocoder.Geocode(gctx, address)
	if err != nil {
		return nil, err
	}

	if err := geo.Point.Validate(); err != nil {
		return nil, &Error{
			Kind:    KindUpstreamUnavailable,
			Message: "geocoder returned coordinates out of range",
			Err:     err,
		}
	}

	log.Printf("Geocoded %q to %s (confidence %s)", address, geo.Point, geo.Confidence)

	lctx, cancelLookup := context.WithTimeout(ctx, LookupTimeout)
	defer cancelLookup()

	recs, err := r.civic.PeopleByLocation(lctx, geo.Point)
	if err != nil {
		return nil, err
	}

	reps, warnings := aggregate(recs)

	log.Printf(
		"Lookup complete - %d records, %d unique representatives, %d warnings",
		len(recs),
		len(reps),
		len(warnings),
	)

	return buildResponse(geo, reps, warnings, time.Since(start)), nil
}

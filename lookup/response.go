// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"sort"
	"time"

	"github.com/thomstrub/representapp/spatial"
)

// GroupedRepresentatives splits the final list by government level. Every
// group is always present in the JSON output, possibly empty. Entries with
// an unknown level land in Other so nothing is dropped silently.
type GroupedRepresentatives struct {
	Federal []Representative `json:"federal"`
	State   []Representative `json:"state"`
	Local   []Representative `json:"local"`
	Other   []Representative `json:"other"`
}

// Metadata describes how the response was produced.
type Metadata struct {
	Address          string        `json:"address"`
	Coordinates      spatial.Point `json:"coordinates"`
	TotalCount       int           `json:"total_count"`
	GovernmentLevels []string      `json:"government_levels"`
	ResponseTimeMS   int64         `json:"response_time_ms"`
}

// Response is the sole externally visible output of the pipeline.
type Response struct {
	Representatives GroupedRepresentatives `json:"representatives"`
	Metadata        Metadata               `json:"metadata"`
	Warnings        []Warning              `json:"warnings"`
}

// buildResponse assembles the final payload. Counts and present levels are
// recomputed from the final list - upstream counts are never trusted.
func buildResponse(geo *GeocodeResult, reps []Representative, warnings []Warning, elapsed time.Duration) *Response {
	grouped := GroupedRepresentatives{
		Federal: make([]Representative, 0),
		State:   make([]Representative, 0),
		Local:   make([]Representative, 0),
		Other:   make([]Representative, 0),
	}

	levels := make(map[Level]struct{})

	for _, rep := range reps {
		levels[rep.GovernmentLevel] = struct{}{}

		switch rep.GovernmentLevel {
		case LevelFederal:
			grouped.Federal = append(grouped.Federal, rep)
		case LevelState:
			grouped.State = append(grouped.State, rep)
		case LevelLocal:
			grouped.Local = append(grouped.Local, rep)
		default:
			grouped.Other = append(grouped.Other, rep)
		}
	}

	presentLevels := make([]string, 0, len(levels))
	for level := range levels {
		presentLevels = append(presentLevels, string(level))
	}

	sort.Strings(presentLevels)

	if warnings == nil {
		warnings = make([]Warning, 0)
	}

	return &Response{
		Representatives: grouped,
		Metadata: Metadata{
			Address:          geo.FormattedAddress,
			Coordinates:      geo.Point,
			TotalCount:       len(reps),
			GovernmentLevels: presentLevels,
			ResponseTimeMS:   elapsed.Milliseconds(),
		},
		Warnings: warnings,
	}
}

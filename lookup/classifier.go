// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import "strings"

// Level is the government level derived from a jurisdiction descriptor.
type Level string

// Government levels, in decreasing scope.
const (
	LevelFederal Level = "federal"
	LevelState   Level = "state"
	LevelLocal   Level = "local"
	LevelUnknown Level = "unknown"
)

// classifyJurisdiction derives the government level from the classification
// tag of a jurisdiction descriptor.
//
// The rules are evaluated in order: the exact country/state matches take
// priority over the catch-all local bucket, so a tag can never land in two
// buckets. Entries that cannot be classified are tagged unknown, never
// dropped.
func classifyJurisdiction(classification string) Level {
	tag := strings.ToLower(strings.TrimSpace(classification))

	switch {
	case tag == "country":
		return LevelFederal
	case tag == "state":
		return LevelState
	case tag != "":
		// county, municipality, and every other non-state, non-country tag
		return LevelLocal
	default:
		return LevelUnknown
	}
}

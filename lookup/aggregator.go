// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import "fmt"

// Warning reports a recovered per-record failure. The partial-failure
// policy is to prefer returning something over returning nothing.
type Warning struct {
	Jurisdiction string `json:"jurisdiction"`
	Reason       string `json:"reason"`
}

// aggregate normalizes the raw records and deduplicates the survivors.
// Records that fail normalization are skipped and reported as warnings,
// never aborting the whole response.
func aggregate(recs []PersonRecord) ([]Representative, []Warning) {
	reps := make([]Representative, 0, len(recs))
	warnings := make([]Warning, 0)

	for _, rec := range recs {
		if rec.ID == "" {
			warnings = append(warnings, Warning{
				Jurisdiction: rec.Jurisdiction.Name,
				Reason:       "record has no identifier",
			})

			continue
		}

		rep, err := normalizeRecord(rec)
		if err != nil {
			warnings = append(warnings, Warning{
				Jurisdiction: rec.Jurisdiction.Name,
				Reason:       fmt.Sprintf("skipping record %s: %v", rec.ID, err),
			})

			continue
		}

		reps = append(reps, rep)
	}

	return dedupeRepresentatives(reps), warnings
}

// dedupeRepresentatives drops representatives sharing an external
// identifier, keeping the first occurrence. A senator returned for both
// the statewide and a district division is expected, not an anomaly, so
// duplicates are dropped silently. The operation is idempotent.
func dedupeRepresentatives(reps []Representative) []Representative {
	seen := make(map[string]struct{}, len(reps))
	out := make([]Representative, 0, len(reps))

	for _, rep := range reps {
		if _, ok := seen[rep.externalID]; ok {
			continue
		}

		seen[rep.externalID] = struct{}{}

		out = append(out, rep)
	}

	return out
}

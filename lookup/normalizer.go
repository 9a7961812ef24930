// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"errors"

	"github.com/google/uuid"
)

// Representative is the canonical, provider-independent record returned to
// callers. It lives for a single request/response cycle.
type Representative struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Position         string  `json:"position"`
	District         *string `json:"district"`
	JurisdictionName string  `json:"jurisdiction_name"`
	Party            *string `json:"party"`
	Contact          Contact `json:"contact"`
	GovernmentLevel  Level   `json:"government_level"`

	// externalID is the provider identifier, stable within one provider
	// response. It is the deduplication key and is never serialized.
	externalID string
}

// Contact holds optional contact details. Absent fields serialize as null
// rather than being omitted, keeping the output schema stable.
type Contact struct {
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Website  *string `json:"website"`
	PhotoURL *string `json:"photo_url"`
}

var errMissingName = errors.New("record has no display name")

// normalizeRecord maps one raw provider record into a canonical
// Representative. A fresh identifier is generated on every call: there is
// no cross-request identity because nothing is persisted.
//
// Party is copied through unchanged. Canonicalizing party vocabularies
// across providers is out of scope.
func normalizeRecord(rec PersonRecord) (Representative, error) {
	if rec.Name == "" {
		return Representative{}, errMissingName
	}

	var website string
	for _, link := range rec.Links {
		if link.URL != "" {
			website = link.URL

			break
		}
	}

	return Representative{
		ID:               uuid.NewString(),
		Name:             rec.Name,
		Position:         rec.CurrentRole.Title,
		District:         nullable(string(rec.CurrentRole.District)),
		JurisdictionName: rec.Jurisdiction.Name,
		Party:            nullable(rec.Party.First()),
		Contact: Contact{
			Email:    nullable(rec.Email),
			Phone:    nullable(rec.CapitolOffice.Voice),
			Address:  nullable(rec.CapitolOffice.Address),
			Website:  nullable(website),
			PhotoURL: nullable(rec.Image),
		},
		GovernmentLevel: classifyJurisdiction(rec.Jurisdiction.Classification),
		externalID:      rec.ID,
	}, nil
}

// nullable maps the empty string to a JSON null.
func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

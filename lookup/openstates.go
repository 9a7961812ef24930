// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/thomstrub/representapp/spatial"
)

const openStatesBaseURL = "https://v3.openstates.org"

// LookupTimeout bounds a single civic-data call.
const LookupTimeout = 10 * time.Second

// CivicDataClient interface for providers resolving coordinates into raw
// person records for every jurisdiction overlapping that point.
type CivicDataClient interface {
	PeopleByLocation(ctx context.Context, point spatial.Point) ([]PersonRecord, error)
}

// PersonRecord is the raw record as returned by the civic-data provider.
// Optional fields decode to their zero value; nothing here is persisted.
type PersonRecord struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Party         PartyList     `json:"party"`
	Email         string        `json:"email"`
	Image         string        `json:"image"`
	CurrentRole   CurrentRole   `json:"current_role"`
	CapitolOffice CapitolOffice `json:"capitol_office"`
	Links         []Link        `json:"links"`
	Jurisdiction  Jurisdiction  `json:"jurisdiction"`
}

// CurrentRole describes the office a person currently holds.
type CurrentRole struct {
	Title      string     `json:"title"`
	District   FlexString `json:"district"`
	DivisionID string     `json:"division_id"`
}

// CapitolOffice holds the capitol office contact details of a person.
type CapitolOffice struct {
	Voice   string `json:"voice"`
	Address string `json:"address"`
}

// Link is an external URL attached to a person record.
type Link struct {
	URL string `json:"url"`
}

// Jurisdiction is the descriptor of the governmental division a record
// belongs to. Classification carries tags such as "country", "state",
// "municipality".
type Jurisdiction struct {
	Name           string `json:"name"`
	Classification string `json:"classification"`
}

// PartyList tolerates the two shapes the provider uses for party
// affiliation: a list of {"name": ...} objects or a bare string.
type PartyList []string

// UnmarshalJSON implements json.Unmarshaler.
func (p *PartyList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single != "" {
			*p = PartyList{single}
		}

		return nil
	}

	var objects []struct {
		Name string `json:"name"`
	}

	if err := json.Unmarshal(data, &objects); err != nil {
		return fmt.Errorf("party must be a string or a list of objects: %w", err)
	}

	names := make(PartyList, 0, len(objects))
	for _, o := range objects {
		if o.Name != "" {
			names = append(names, o.Name)
		}
	}

	*p = names

	return nil
}

// First returns the first party name, or "" when none is on file.
func (p PartyList) First() string {
	if len(p) == 0 {
		return ""
	}

	return p[0]
}

// FlexString decodes JSON values that arrive either as a string or as a
// number ("7" vs 7 for district labels).
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}

	*f = FlexString(n.String())

	return nil
}

// OpenStatesClient is a CivicDataClient backed by the OpenStates v3 API.
type OpenStatesClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenStatesClient creates a new OpenStates client. The API key is sent
// on every request through the X-API-Key header.
func NewOpenStatesClient(apiKey string, opts *ClientOptions) *OpenStatesClient {
	headers := map[string]string{
		"X-API-Key": apiKey,
	}

	return &OpenStatesClient{
		baseURL:    openStatesBaseURL,
		httpClient: newHTTPClient(LookupTimeout, headers, opts),
	}
}

type openStatesResponse struct {
	Results []PersonRecord `json:"results"`
}

// PeopleByLocation queries the people.geo endpoint for every person whose
// jurisdiction overlaps the given point. An empty result list is a valid
// outcome, distinct from any transport or auth failure.
func (c *OpenStatesClient) PeopleByLocation(ctx context.Context, point spatial.Point) ([]PersonRecord, error) {
	if err := point.Validate(); err != nil {
		return nil, &Error{
			Kind:    KindInvalidInput,
			Message: "invalid coordinates",
			Err:     err,
		}
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(point.Lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(point.Lng, 'f', -1, 64))
	params.Set("per_page", "50")

	reqURL := c.baseURL + "/people.geo?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{
			Kind:    KindUpstreamUnavailable,
			Message: "building civic-data request",
			Err:     err,
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{
			Kind:    KindUpstreamUnavailable,
			Message: "civic-data request failed",
			Err:     err,
		}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			Kind:    classifyHTTPStatus(resp.StatusCode),
			Message: fmt.Sprintf("openstates returned status %d", resp.StatusCode),
		}
	}

	var osResp openStatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&osResp); err != nil {
		return nil, &Error{
			Kind:    KindUpstreamUnavailable,
			Message: "decoding civic-data response",
			Err:     err,
		}
	}

	return osResp.Results, nil
}

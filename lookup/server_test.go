// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(geocoder Geocoder, civic CivicDataClient) *gin.Engine {
	return NewServer(NewResolver(geocoder, civic)).Router()
}

func doRequest(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)

	return w
}

func decodeErrorBody(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var payload struct {
		Error errorBody `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	return payload.Error
}

func TestServerHealth(t *testing.T) {
	router := newTestServer(&fakeGeocoder{}, &fakeCivicClient{})

	w := doRequest(router, http.MethodGet, "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestServerLookupSuccess(t *testing.T) {
	router := newTestServer(
		&fakeGeocoder{result: whiteHouseGeocode()},
		&fakeCivicClient{records: []PersonRecord{
			recordWithID("ocd-person/pres", "The President", "country"),
			recordWithID("ocd-person/mayor", "The Mayor", "municipality"),
		}},
	)

	w := doRequest(router, http.MethodGet, "/api/representatives?address=1600+Pennsylvania+Avenue+NW")

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Metadata.TotalCount)
	assert.Len(t, resp.Representatives.Federal, 1)
	assert.Len(t, resp.Representatives.Local, 1)
	assert.Equal(t, []string{"federal", "local"}, resp.Metadata.GovernmentLevels)
}

func TestServerLookupMissingParameter(t *testing.T) {
	geocoder := &fakeGeocoder{result: whiteHouseGeocode()}
	router := newTestServer(geocoder, &fakeCivicClient{})

	w := doRequest(router, http.MethodGet, "/api/representatives")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "MISSING_PARAMETER", body.Code)
	assert.Zero(t, geocoder.calls)
}

func TestServerLookupErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		geocodeErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid input",
			geocodeErr: nil, // triggered by the short address below
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_ADDRESS",
		},
		{
			name:       "not found",
			geocodeErr: &Error{Kind: KindAddressNotFound, Message: "no geocoding results found for address"},
			wantStatus: http.StatusBadRequest,
			wantCode:   "ADDRESS_NOT_FOUND",
		},
		{
			name:       "rate limited",
			geocodeErr: &Error{Kind: KindRateLimited, Message: "geocoding quota exceeded"},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "RATE_LIMIT_EXCEEDED",
		},
		{
			name:       "upstream unavailable",
			geocodeErr: &Error{Kind: KindUpstreamUnavailable, Message: "geocoding service unavailable"},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "EXTERNAL_SERVICE_ERROR",
		},
		{
			name:       "auth failure",
			geocodeErr: &Error{Kind: KindAuthFailure, Message: "geocoding request denied"},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "EXTERNAL_SERVICE_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestServer(&fakeGeocoder{err: tt.geocodeErr}, &fakeCivicClient{})

			target := "/api/representatives?address=700+5th+Ave,+Seattle,+WA"
			if tt.geocodeErr == nil {
				target = "/api/representatives?address=x"
			}

			w := doRequest(router, http.MethodGet, target)

			assert.Equal(t, tt.wantStatus, w.Code)
			body := decodeErrorBody(t, w)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestServerLookupUnclassifiedError(t *testing.T) {
	router := newTestServer(&fakeGeocoder{err: assert.AnError}, &fakeCivicClient{})

	w := doRequest(router, http.MethodGet, "/api/representatives?address=700+5th+Ave,+Seattle,+WA")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeErrorBody(t, w)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.NotContains(t, body.Message, assert.AnError.Error(), "internal details must not leak")
}

func TestServerCORSHeaders(t *testing.T) {
	router := newTestServer(&fakeGeocoder{result: whiteHouseGeocode()}, &fakeCivicClient{})

	w := doRequest(router, http.MethodGet, "/api/representatives?address=700+5th+Ave,+Seattle,+WA")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = doRequest(router, http.MethodOptions, "/api/representatives")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "GET, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
}

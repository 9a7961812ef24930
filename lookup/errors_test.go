// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"errors"
	"net/http"
	"testing"
)

type errorCheckTestCase struct {
	name string
	err  error
	want bool
}

func runErrorCheckTest(t *testing.T, tests []errorCheckTestCase, checkFunc func(error) bool) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkFunc(tt.err); got != tt.want {
				t.Errorf("checkFunc() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	tests := []errorCheckTestCase{
		{
			name: "rate limited error kind",
			err: &Error{
				Kind:    KindRateLimited,
				Message: "rate limit exceeded",
			},
			want: true,
		},
		{
			name: "error message contains rate limit",
			err:  errors.New("rate limit exceeded"),
			want: true,
		},
		{
			name: "error message contains too many requests",
			err:  errors.New("too many requests"),
			want: true,
		},
		{
			name: "error message contains 429",
			err:  errors.New("openstates returned status 429"),
			want: true,
		},
		{
			name: "error message contains over_query_limit",
			err:  errors.New("google maps status: OVER_QUERY_LIMIT"),
			want: true,
		},
		{
			name: "other error kind",
			err: &Error{
				Kind:    KindAddressNotFound,
				Message: "not found",
			},
			want: false,
		},
		{
			name: "unrelated error",
			err:  errors.New("some other error"),
			want: false,
		},
	}

	runErrorCheckTest(t, tests, IsRateLimited)
}

func TestIsUpstreamUnavailable(t *testing.T) {
	tests := []errorCheckTestCase{
		{
			name: "upstream unavailable error kind",
			err: &Error{
				Kind:    KindUpstreamUnavailable,
				Message: "service unavailable",
			},
			want: true,
		},
		{
			name: "error message contains timeout",
			err:  errors.New("request timeout after 10 seconds"),
			want: true,
		},
		{
			name: "error message contains deadline exceeded",
			err:  errors.New("context deadline exceeded"),
			want: true,
		},
		{
			name: "other error kind",
			err: &Error{
				Kind:    KindAuthFailure,
				Message: "bad key",
			},
			want: false,
		},
		{
			name: "unrelated error",
			err:  errors.New("some other error"),
			want: false,
		},
	}

	runErrorCheckTest(t, tests, IsUpstreamUnavailable)
}

func TestIsAuthFailure(t *testing.T) {
	tests := []errorCheckTestCase{
		{
			name: "auth failure error kind",
			err: &Error{
				Kind:    KindAuthFailure,
				Message: "authentication failed",
			},
			want: true,
		},
		{
			name: "error message contains request_denied",
			err:  errors.New("google maps status: REQUEST_DENIED"),
			want: true,
		},
		{
			name: "error message contains invalid api key",
			err:  errors.New("invalid API key"),
			want: true,
		},
		{
			name: "other error kind",
			err: &Error{
				Kind:    KindRateLimited,
				Message: "rate limit",
			},
			want: false,
		},
		{
			name: "unrelated error",
			err:  errors.New("some other error"),
			want: false,
		},
	}

	runErrorCheckTest(t, tests, IsAuthFailure)
}

func TestIsInvalidInput(t *testing.T) {
	tests := []errorCheckTestCase{
		{
			name: "invalid input error kind",
			err:  &Error{Kind: KindInvalidInput, Message: "address cannot be empty"},
			want: true,
		},
		{
			name: "other error kind",
			err:  &Error{Kind: KindAddressNotFound, Message: "not found"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("address cannot be empty"),
			want: false,
		},
	}

	runErrorCheckTest(t, tests, IsInvalidInput)
}

func TestClassifyHTTPStatus(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       ErrorKind
	}{
		{
			name:       "429 too many requests",
			statusCode: 429,
			want:       KindRateLimited,
		},
		{
			name:       "401 unauthorized",
			statusCode: 401,
			want:       KindAuthFailure,
		},
		{
			name:       "403 forbidden",
			statusCode: 403,
			want:       KindAuthFailure,
		},
		{
			name:       "500 internal server error",
			statusCode: 500,
			want:       KindUpstreamUnavailable,
		},
		{
			name:       "502 bad gateway",
			statusCode: 502,
			want:       KindUpstreamUnavailable,
		},
		{
			name:       "503 service unavailable",
			statusCode: 503,
			want:       KindUpstreamUnavailable,
		},
		{
			name:       "504 gateway timeout",
			statusCode: 504,
			want:       KindUpstreamUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyHTTPStatus(tt.statusCode); got != tt.want {
				t.Errorf("classifyHTTPStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "invalid input maps to 400",
			err:  &Error{Kind: KindInvalidInput},
			want: http.StatusBadRequest,
		},
		{
			name: "address not found maps to 400",
			err:  &Error{Kind: KindAddressNotFound},
			want: http.StatusBadRequest,
		},
		{
			name: "rate limited maps to 503",
			err:  &Error{Kind: KindRateLimited},
			want: http.StatusServiceUnavailable,
		},
		{
			name: "upstream unavailable maps to 503",
			err:  &Error{Kind: KindUpstreamUnavailable},
			want: http.StatusServiceUnavailable,
		},
		{
			name: "auth failure maps to 503",
			err:  &Error{Kind: KindAuthFailure},
			want: http.StatusServiceUnavailable,
		},
		{
			name: "unknown kind maps to 500",
			err:  &Error{Kind: KindUnknown},
			want: http.StatusInternalServerError,
		},
		{
			name: "unclassified error maps to 500",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
		{
			name: "wrapped pipeline error keeps its mapping",
			err:  &Error{Kind: KindRateLimited, Err: errors.New("429")},
			want: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		kind ErrorKind
		want string
	}{
		{"invalid input", KindInvalidInput, "INVALID_ADDRESS"},
		{"address not found", KindAddressNotFound, "ADDRESS_NOT_FOUND"},
		{"rate limited", KindRateLimited, "RATE_LIMIT_EXCEEDED"},
		{"upstream unavailable", KindUpstreamUnavailable, "EXTERNAL_SERVICE_ERROR"},
		{"auth failure", KindAuthFailure, "EXTERNAL_SERVICE_ERROR"},
		{"unknown", KindUnknown, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Error{Kind: tt.kind}
			if got := e.Code(); got != tt.want {
				t.Errorf("Code() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	innerErr := errors.New("inner error")
	lerr := &Error{
		Kind:    KindAddressNotFound,
		Message: "address not found",
		Err:     innerErr,
	}

	if !errors.Is(lerr, innerErr) {
		t.Error("errors.Is should find wrapped error")
	}

	if !errors.Is(lerr.Unwrap(), innerErr) {
		t.Error("Unwrap should return inner error")
	}
}

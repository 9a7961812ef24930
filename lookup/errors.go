// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error represents a failure in the resolution pipeline, classified at the
// adapter boundary so downstream stages never see raw provider errors.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// ErrorKind defines the failure taxonomy of the pipeline.
type ErrorKind int

const (
	// KindUnknown unclassified failure.
	KindUnknown ErrorKind = iota
	// KindInvalidInput malformed address or coordinates.
	KindInvalidInput
	// KindAddressNotFound the geocoder returned zero matches.
	KindAddressNotFound
	// KindRateLimited an upstream provider signaled throttling.
	KindRateLimited
	// KindUpstreamUnavailable timeout, transport error, 5xx, or malformed payload.
	KindUpstreamUnavailable
	// KindAuthFailure invalid credentials for an upstream provider.
	KindAuthFailure
)

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the machine-readable error code exposed to API callers.
func (e *Error) Code() string {
	switch e.Kind {
	case KindInvalidInput:
		return "INVALID_ADDRESS"
	case KindAddressNotFound:
		return "ADDRESS_NOT_FOUND"
	case KindRateLimited:
		return "RATE_LIMIT_EXCEEDED"
	case KindUpstreamUnavailable, KindAuthFailure:
		return "EXTERNAL_SERVICE_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}

func isKind(err error, kind ErrorKind) bool {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind == kind
	}

	return false
}

// IsInvalidInput verifies if the error is caused by malformed caller input.
func IsInvalidInput(err error) bool {
	return isKind(err, KindInvalidInput)
}

// IsAddressNotFound verifies if the error is a zero-match geocoding outcome.
func IsAddressNotFound(err error) bool {
	return isKind(err, KindAddressNotFound)
}

// IsRateLimited verifies if the error is caused by upstream throttling.
func IsRateLimited(err error) bool {
	if isKind(err, KindRateLimited) {
		return true
	}

	// Detect by common error messages
	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "over_query_limit") ||
		strings.Contains(errStr, "429")
}

// IsUpstreamUnavailable verifies if the error is a transport or provider failure.
func IsUpstreamUnavailable(err error) bool {
	if isKind(err, KindUpstreamUnavailable) {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") ||
		strings.Contains(errStr, "connection refused")
}

// IsAuthFailure verifies if the error is caused by rejected credentials.
func IsAuthFailure(err error) bool {
	if isKind(err, KindAuthFailure) {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "request_denied") ||
		strings.Contains(errStr, "invalid api key") ||
		strings.Contains(errStr, "unauthorized")
}

// classifyHTTPStatus maps a provider HTTP status code to an error kind.
// Only used for non-2xx responses.
func classifyHTTPStatus(statusCode int) ErrorKind {
	switch statusCode {
	case http.StatusTooManyRequests: // 429
		return KindRateLimited
	case http.StatusUnauthorized, http.StatusForbidden: // 401, 403
		return KindAuthFailure
	default:
		return KindUpstreamUnavailable
	}
}

// HTTPStatus maps a pipeline error to the status code of the HTTP boundary.
// Success, including empty representative lists, is 200 and never reaches here.
func HTTPStatus(err error) int {
	var lerr *Error
	if !errors.As(err, &lerr) {
		return http.StatusInternalServerError
	}

	switch lerr.Kind {
	case KindInvalidInput, KindAddressNotFound:
		return http.StatusBadRequest
	case KindRateLimited, KindUpstreamUnavailable, KindAuthFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Copyright 2025 The RepresentApp Authors
// SPDX-License-Identifier: Apache-2.0

package lookup

import (
	"fmt"
	"strings"
)

const (
	// minAddressLength guards against single-token queries like "x" that
	// would burn geocoding quota without any chance of a match.
	minAddressLength = 5

	maxAddressLength = 500
)

// validateAddress verifies the raw address before any network call is made.
func validateAddress(address string) error {
	trimmed := strings.TrimSpace(address)

	if trimmed == "" {
		return &Error{
			Kind:    KindInvalidInput,
			Message: "address cannot be empty",
		}
	}

	if len(trimmed) < minAddressLength {
		return &Error{
			Kind:    KindInvalidInput,
			Message: fmt.Sprintf("address too short (minimum %d characters)", minAddressLength),
		}
	}

	if len(address) > maxAddressLength {
		return &Error{
			Kind:    KindInvalidInput,
			Message: fmt.Sprintf("address exceeds maximum length of %d characters (provided: %d)", maxAddressLength, len(address)),
		}
	}

	return nil
}

// sanitizeAddress cleans up an address string before sending it upstream.
func sanitizeAddress(address string) string {
	address = strings.TrimSpace(address)

	if len(address) > maxAddressLength {
		address = address[:maxAddressLength]
	}

	return address
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"errors"
	"fmt"
	"net/http"
)

// Typed error categories for image backend failures. The chain and its
// callers branch on these instead of matching provider error text.
var (
	// ErrRateLimited indicates the backend rejected the call with HTTP 429.
	ErrRateLimited = errors.New("ai: rate limited")

	// ErrUnavailable indicates a backend-side failure (HTTP 5xx or transport error).
	ErrUnavailable = errors.New("ai: backend unavailable")

	// ErrNoImage indicates the backend responded successfully but returned
	// no usable image data.
	ErrNoImage = errors.New("ai: no image data in response")
)

// classifyStatus converts a non-200 HTTP response into a categorized error.
// The truncated body is kept for logging; callers must not branch on it.
func classifyStatus(backend string, statusCode int, body []byte) error {
	detail := string(body)
	if len(detail) > 200 {
		detail = detail[:200]
	}

	switch {
	case statusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s API error (status %d): %s: %w", backend, statusCode, detail, ErrRateLimited)
	case statusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s API error (status %d): %s: %w", backend, statusCode, detail, ErrUnavailable)
	default:
		return fmt.Errorf("%s API error (status %d): %s", backend, statusCode, detail)
	}
}

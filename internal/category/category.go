// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package category provides storage-key normalization for business category
// names. Any string is accepted as a category; normalization only exists so
// that "HVAC installers & contractors" and "hvac Installers  Contractors"
// map to the same cache row and file path prefix.
package category

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a lowercase letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s_]`)
	// whitespace matches one or more whitespace characters.
	whitespace = regexp.MustCompile(`\s+`)
	// multipleUnderscores collapses consecutive underscores into one.
	multipleUnderscores = regexp.MustCompile(`_{2,}`)
)

// Normalize creates a storage key from a category name.
// Example: "HVAC installers & contractors" → "hvac_installers_contractors"
func Normalize(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = whitespace.ReplaceAllString(result, "_")
	result = multipleUnderscores.ReplaceAllString(result, "_")
	result = strings.Trim(result, "_")
	return result
}

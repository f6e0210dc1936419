// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"net/url"
	"regexp"
	"strings"
)

// placeholderHost is the hosted placeholder-image service used when every
// backend in the chain has failed for a slot.
const placeholderHost = "placehold.co"

// placeholderMaxErrLen caps how much of the upstream error text is embedded
// in the placeholder image.
const placeholderMaxErrLen = 30

// unsafeErrChars strips everything outside a safe subset before the error
// text is embedded in a URL.
var unsafeErrChars = regexp.MustCompile(`[^a-zA-Z0-9 ():]`)

// PlaceholderURL builds a deterministic placeholder image URL embedding a
// sanitized, truncated error message. The result renders as a grey
// text-on-color image so the page stays visually complete.
func PlaceholderURL(err error) string {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	msg = unsafeErrChars.ReplaceAllString(msg, "")
	if len(msg) > placeholderMaxErrLen {
		msg = msg[:placeholderMaxErrLen]
	}
	return "https://" + placeholderHost + "/800x600?text=Error:+" + url.QueryEscape(msg)
}

// IsPlaceholder reports whether an asset reference points at the placeholder
// service rather than a generated image.
func IsPlaceholder(ref string) bool {
	return strings.Contains(ref, placeholderHost)
}

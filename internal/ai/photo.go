// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// PhotoServiceBackend fetches a themed stock photo from a free random-photo
// service. It is the last real tier in the chain: not AI-generated, but a
// genuine photograph beats a grey placeholder.
type PhotoServiceBackend struct {
	baseURL string
	client  *http.Client
}

// NewPhotoService creates a backend against loremflickr.com. baseURL is
// overridable for tests.
func NewPhotoService(baseURL string) *PhotoServiceBackend {
	if baseURL == "" {
		baseURL = "https://loremflickr.com"
	}
	return &PhotoServiceBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *PhotoServiceBackend) Name() string { return "photo-service" }

// nonKeywordChars strips prompt text down to keyword-safe characters.
var nonKeywordChars = regexp.MustCompile(`[^a-z0-9 ]`)

// GenerateImage fetches a random photo matching the first few keywords of
// the prompt at dimensions derived from the aspect ratio.
func (p *PhotoServiceBackend) GenerateImage(ctx context.Context, prompt string, aspect Aspect) ([]byte, error) {
	width, height := 800, 800
	switch aspect {
	case AspectWide:
		width, height = 1280, 720
	case AspectClassic:
		width, height = 800, 600
	}

	url := fmt.Sprintf("%s/%d/%d/%s", p.baseURL, width, height, promptKeywords(prompt))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("photo service request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("photo service http: %w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, classifyStatus("photo service", resp.StatusCode, body)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("photo service read body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("photo service: %w", ErrNoImage)
	}
	return data, nil
}

// promptKeywords reduces a full generation prompt to a short comma-joined
// keyword list the photo service understands.
func promptKeywords(prompt string) string {
	clean := nonKeywordChars.ReplaceAllString(strings.ToLower(prompt), "")
	words := strings.Fields(clean)
	if len(words) > 3 {
		words = words[:3]
	}
	if len(words) == 0 {
		return "business"
	}
	return strings.Join(words, ",")
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides the image-generation chain and the text providers
// used for template generation. Image backends are tried in priority order
// with independent failure handling; text providers sit behind a Registry.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Aspect is an enumerated image aspect ratio accepted by backends.
type Aspect string

const (
	AspectSquare  Aspect = "1:1"
	AspectClassic Aspect = "4:3"
	AspectWide    Aspect = "16:9"
)

// Valid reports whether the aspect is one of the supported ratios.
func (a Aspect) Valid() bool {
	switch a {
	case AspectSquare, AspectClassic, AspectWide:
		return true
	}
	return false
}

// ImageBackend is one upstream image producer tried within the chain.
// GenerateImage completes or fails before returning; there is no streaming.
type ImageBackend interface {
	// GenerateImage creates an image from a text prompt and returns the raw
	// image bytes (PNG or JPEG; the caller normalizes to PNG).
	GenerateImage(ctx context.Context, prompt string, aspect Aspect) ([]byte, error)

	// Name returns the backend identifier (e.g., "gemini", "openai").
	Name() string
}

const (
	// batchGroupSize bounds how many slots generate concurrently.
	// 1 at a time is too slow (platform timeouts), 4 trips rate limits;
	// 2 with a short pause is the measured sweet spot.
	batchGroupSize = 2

	// defaultBatchPause is the delay between slot groups.
	defaultBatchPause = 500 * time.Millisecond
)

// Chain tries an ordered set of image backends until one succeeds.
type Chain struct {
	backends []ImageBackend
	pause    time.Duration
}

// NewChain creates a chain over the given backends in priority order.
// Backends that are nil are skipped, so callers can pass conditionally
// constructed backends directly.
func NewChain(backends ...ImageBackend) *Chain {
	c := &Chain{pause: defaultBatchPause}
	for _, b := range backends {
		if b != nil {
			c.backends = append(c.backends, b)
		}
	}
	return c
}

// SetPause overrides the inter-group pause. Intended for tests.
func (c *Chain) SetPause(d time.Duration) { c.pause = d }

// Generate tries each backend in order and returns the first successful
// image. Every backend failure is logged; the last error is returned when
// all backends are exhausted.
func (c *Chain) Generate(ctx context.Context, prompt string, aspect Aspect) ([]byte, error) {
	if len(c.backends) == 0 {
		return nil, fmt.Errorf("ai: no image backends configured")
	}
	if !aspect.Valid() {
		return nil, fmt.Errorf("ai: invalid aspect ratio %q", aspect)
	}

	var lastErr error
	for _, b := range c.backends {
		data, err := b.GenerateImage(ctx, prompt, aspect)
		if err == nil {
			return data, nil
		}
		lastErr = err
		slog.Warn("image backend failed, trying next",
			"backend", b.Name(),
			"error", truncateErr(err),
		)
	}
	return nil, lastErr
}

// SlotRequest is one named generation unit within a batch.
type SlotRequest struct {
	Slot   string
	Prompt string
	Aspect Aspect
}

// SlotResult is the outcome for one slot. Exactly one of Data or
// PlaceholderURL is set: chain exhaustion degrades to a placeholder
// reference instead of failing the batch.
type SlotResult struct {
	Slot           string
	Data           []byte
	PlaceholderURL string
}

// Failed reports whether this slot degraded to a placeholder.
func (r SlotResult) Failed() bool { return r.PlaceholderURL != "" }

// GenerateBatch processes requests in fixed-size groups with a short pause
// between groups. Groups run in request order; slots within a group run
// concurrently with no ordering guarantee. Per-slot failures never abort
// the batch.
func (c *Chain) GenerateBatch(ctx context.Context, requests []SlotRequest) []SlotResult {
	results := make([]SlotResult, len(requests))

	for start := 0; start < len(requests); start += batchGroupSize {
		end := start + batchGroupSize
		if end > len(requests) {
			end = len(requests)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				req := requests[i]
				data, err := c.Generate(ctx, req.Prompt, req.Aspect)
				if err != nil {
					slog.Warn("slot generation exhausted all backends",
						"slot", req.Slot,
						"error", truncateErr(err),
					)
					results[i] = SlotResult{Slot: req.Slot, PlaceholderURL: PlaceholderURL(err)}
					return
				}
				results[i] = SlotResult{Slot: req.Slot, Data: data}
			}(i)
		}
		wg.Wait()

		if end < len(requests) && c.pause > 0 {
			time.Sleep(c.pause)
		}
	}

	return results
}

// truncateErr keeps log lines readable when upstream bodies are echoed back.
func truncateErr(err error) string {
	msg := err.Error()
	if len(msg) > 160 {
		return msg[:160] + "..."
	}
	return msg
}

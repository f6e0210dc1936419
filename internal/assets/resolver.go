// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package assets resolves a business category to a complete set of
// website images. Resolution is cache-first: a category that already has
// a fully rendered asset set is served from Postgres; otherwise the full
// slot set is generated, uploaded, and cached for the next caller.
package assets

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"siteforge/internal/ai"
	"siteforge/internal/category"
	"siteforge/internal/imaging"
	"siteforge/internal/models"
	"siteforge/internal/store"
)

var (
	// ErrCategoryRequired is returned when Resolve is called without a category.
	ErrCategoryRequired = errors.New("category required")
	// ErrPromptRequired is returned when GenerateSingle is called without a prompt.
	ErrPromptRequired = errors.New("prompt required")
)

// AssetCache is the persistence surface the resolver needs.
type AssetCache interface {
	Get(category string) (*models.CachedAssetRecord, error)
	Put(category string, assets models.AssetSet, status models.AssetStatus) error
}

// ImageGenerator produces images, individually or in slot batches.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt string, aspect ai.Aspect) ([]byte, error)
	GenerateBatch(ctx context.Context, requests []ai.SlotRequest) []ai.SlotResult
}

// Uploader stores image bytes and returns a public URL.
type Uploader interface {
	UploadImage(ctx context.Context, data []byte, folder, filename string) (string, error)
}

// Resolver implements cache-first category asset resolution.
type Resolver struct {
	cache    AssetCache
	gen      ImageGenerator
	uploader Uploader // nil when storage is not configured
	now      func() time.Time
}

// NewResolver creates a resolver. uploader may be nil; every upload then
// degrades to an inline data URI.
func NewResolver(cache AssetCache, gen ImageGenerator, uploader Uploader) *Resolver {
	return &Resolver{cache: cache, gen: gen, uploader: uploader, now: time.Now}
}

// Resolve returns the full asset set for a category. A cached set with a
// clean status is returned as-is; a missing or degraded set triggers full
// regeneration. Per-slot failures degrade to placeholder URLs and mark
// the cached record for regeneration on the next call.
func (r *Resolver) Resolve(ctx context.Context, rawCategory string) (models.AssetSet, error) {
	rawCategory = strings.TrimSpace(rawCategory)
	if rawCategory == "" {
		return nil, ErrCategoryRequired
	}
	key := category.Normalize(rawCategory)

	cached, err := r.cache.Get(key)
	if err != nil {
		return nil, fmt.Errorf("asset cache lookup: %w", err)
	}
	if store.Usable(cached) {
		slog.Info("asset cache hit", "category", key)
		return cached.Assets, nil
	}

	slog.Info("generating category assets", "category", key)
	results := r.gen.GenerateBatch(ctx, slotRequests(rawCategory))

	assets := make(models.AssetSet, len(results))
	status := models.AssetStatusOK
	for _, res := range results {
		if res.Failed() {
			assets[res.Slot] = res.PlaceholderURL
			status = models.AssetStatusPlaceholder
			continue
		}
		assets[res.Slot] = r.storeImage(ctx, res.Data, key, res.Slot)
	}

	if err := r.cache.Put(key, assets, status); err != nil {
		// Generation succeeded; a cache write failure only costs the next
		// caller a regeneration.
		slog.Warn("asset cache write failed", "category", key, "error", err)
	}

	return assets, nil
}

// GenerateSingle produces one image from a free-form prompt, for the
// manual generator tool. Generation failure is a hard error; upload
// failure degrades to an inline data URI with an explanatory note.
func (r *Resolver) GenerateSingle(ctx context.Context, prompt string) (url, note string, err error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", "", ErrPromptRequired
	}

	data, err := r.gen.Generate(ctx, prompt, ai.AspectSquare)
	if err != nil {
		return "", "", fmt.Errorf("generation failed: %w", err)
	}

	png, err := imaging.ToPNG(data)
	if err != nil {
		return "", "", fmt.Errorf("generation failed: %w", err)
	}

	if r.uploader != nil {
		filename := fmt.Sprintf("gen-%d.png", r.now().UnixMilli())
		uploaded, upErr := r.uploader.UploadImage(ctx, png, "manual", filename)
		if upErr == nil {
			return uploaded, "", nil
		}
		slog.Warn("single image upload failed, returning inline", "error", upErr)
	}

	return dataURI(png), "Storage failed, returning direct image", nil
}

// storeImage normalizes one slot image to PNG and uploads it, returning
// the reference to cache. Any failure past generation degrades to an
// inline data URI so the slot is never lost.
func (r *Resolver) storeImage(ctx context.Context, data []byte, key, slot string) string {
	png, err := imaging.ToPNG(data)
	if err != nil {
		slog.Warn("png conversion failed, storing original bytes", "slot", slot, "error", err)
		png = data
	}

	if r.uploader == nil {
		return dataURI(png)
	}

	filename := fmt.Sprintf("%s-%s-%d.png", key, slot, r.now().UnixMilli())
	url, err := r.uploader.UploadImage(ctx, png, key, filename)
	if err != nil {
		slog.Warn("slot upload failed, using inline fallback", "slot", slot, "error", err)
		return dataURI(png)
	}
	return url
}

// slotRequests builds the ordered generation batch for a category. Hero
// and team render wide; service and gallery slots render square.
func slotRequests(cat string) []ai.SlotRequest {
	prompts := map[string]string{
		"hero":      fmt.Sprintf("A friendly professional %s professional in a clean blue uniform smiling while holding %s tool, standing in a bright modern %s workplace, focusing on trust and reliability, 16:9 wide aspect ratio", cat, cat, cat),
		"team":      fmt.Sprintf("%s team group photo, professional, smiling, office environment, 16:9 wide aspect ratio", cat),
		"service_0": fmt.Sprintf("%s service action closeup, professional details, style A", cat),
		"service_1": fmt.Sprintf("%s service action, different angle, style B", cat),
		"service_2": fmt.Sprintf("%s service equipment or interaction, style C", cat),
		"gallery_0": fmt.Sprintf("%s project result, high quality photo, finished work, example A", cat),
		"gallery_1": fmt.Sprintf("%s project transformation, stunning result, example B", cat),
		"gallery_2": fmt.Sprintf("%s project details, professional quality, example C", cat),
	}

	requests := make([]ai.SlotRequest, 0, len(models.RequiredSlots))
	for _, slot := range models.RequiredSlots {
		aspect := ai.AspectSquare
		if slot == "hero" || slot == "team" {
			aspect = ai.AspectWide
		}
		requests = append(requests, ai.SlotRequest{Slot: slot, Prompt: prompts[slot], Aspect: aspect})
	}
	return requests
}

func dataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

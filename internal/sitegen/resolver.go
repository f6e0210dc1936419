// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package sitegen resolves a business category to a website template.
// Stored templates win: when a category has saved variants, one is picked
// uniformly at random. Only a category with no variants falls through to
// live LLM generation, and the generated result is saved so the next
// request is a database hit.
package sitegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"siteforge/internal/category"
	"siteforge/internal/engine"
	"siteforge/internal/models"
)

var (
	// ErrCategoryRequired is returned when Resolve is called without a category.
	ErrCategoryRequired = errors.New("category required")
	// ErrNotFound is returned when no template exists and generation is not
	// possible.
	ErrNotFound = errors.New("no template available")
)

// Template sources reported to callers.
const (
	SourceDatabase  = "database"
	SourceGenerated = "generated"
)

// templateSystemPrompt instructs the model to emit a single self-contained
// page with photo placeholder tokens the asset pipeline can later bind.
const templateSystemPrompt = `You are an expert web designer producing one-page websites for local service businesses.

Rules:
- Output ONLY the HTML document body content, no markdown fences and no explanations.
- You MUST use Tailwind CSS utility classes for ALL styling. Do NOT use <style> blocks or inline CSS.
- Build these sections in order: sticky navigation, hero, services (id="services"), about/team (id="about"), gallery, testimonials, contact form (id="contact"), footer.
- Navigation links must point at the section ids above.
- Insert EXACTLY four image placeholders using this format: <img src="[DESC_PHOTO: description]" alt="description Image">, one in the hero, one in the about section, two in the gallery.
- The contact form must collect name, email, phone, and a message.
- Use placeholder business text appropriate for the category; never invent real phone numbers or addresses.`

// TemplateStore is the persistence surface the resolver needs.
type TemplateStore interface {
	ListByCategory(category string) ([]models.CategoryTemplate, error)
	Insert(category, html string, variantID *int) (*models.CategoryTemplate, error)
}

// TextGenerator produces text from a system and user prompt.
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Result is a resolved template and where it came from.
type Result struct {
	HTML   string `json:"html"`
	Source string `json:"source"`
}

// Resolver implements database-first template resolution.
type Resolver struct {
	store TemplateStore
	gen   TextGenerator // nil when no text provider is configured
	pick  func(n int) int
}

// NewResolver creates a resolver. gen may be nil; resolution then serves
// stored templates only.
func NewResolver(store TemplateStore, gen TextGenerator) *Resolver {
	return &Resolver{store: store, gen: gen, pick: rand.IntN}
}

// Resolve returns a template for the category. Stored variants are picked
// uniformly at random; a category with none falls through to generation
// when a text provider is available, otherwise ErrNotFound. customPrompt
// augments the generation request and is ignored for stored templates.
func (r *Resolver) Resolve(ctx context.Context, rawCategory, customPrompt string) (*Result, error) {
	rawCategory = strings.TrimSpace(rawCategory)
	if rawCategory == "" {
		return nil, ErrCategoryRequired
	}
	key := category.Normalize(rawCategory)

	templates, err := r.store.ListByCategory(key)
	if err != nil {
		return nil, fmt.Errorf("template lookup: %w", err)
	}

	if len(templates) > 0 {
		selected := templates[r.pick(len(templates))]
		slog.Info("template served from database",
			"category", key,
			"variants", len(templates),
			"id", selected.ID,
		)
		return &Result{HTML: selected.HTML, Source: SourceDatabase}, nil
	}

	if r.gen == nil {
		return nil, fmt.Errorf("%w for category %q", ErrNotFound, rawCategory)
	}

	slog.Info("no stored template, generating", "category", key)
	userPrompt := fmt.Sprintf("Create a complete one-page website for a %s business.", rawCategory)
	if customPrompt = strings.TrimSpace(customPrompt); customPrompt != "" {
		userPrompt += " " + customPrompt
	}
	raw, err := r.gen.Generate(ctx, templateSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("template generation: %w", err)
	}

	html := engine.Repair(raw)
	if html == "" {
		return nil, fmt.Errorf("%w for category %q", ErrNotFound, rawCategory)
	}

	// Persist so the next request for this category is a cache hit. Losing
	// the write only costs a regeneration.
	if _, err := r.store.Insert(key, html, nil); err != nil {
		slog.Warn("generated template save failed", "category", key, "error", err)
	}

	return &Result{HTML: html, Source: SourceGenerated}, nil
}

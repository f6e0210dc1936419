// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON API: asset generation, template
// resolution, payment verification, saved sites, and the admin surface.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"siteforge/internal/models"
	"siteforge/internal/payment"
	"siteforge/internal/sitegen"
)

// AssetResolver resolves category asset sets and single manual images.
type AssetResolver interface {
	Resolve(ctx context.Context, category string) (models.AssetSet, error)
	GenerateSingle(ctx context.Context, prompt string) (url, note string, err error)
}

// TemplateResolver resolves a category to a website template.
type TemplateResolver interface {
	Resolve(ctx context.Context, category, customPrompt string) (*sitegen.Result, error)
}

// PaymentVerifier checks a checkout session with the payment provider.
type PaymentVerifier interface {
	VerifySession(ctx context.Context, sessionID string) (*payment.Session, error)
}

// WebsiteRepo is the primary store for saved site records.
type WebsiteRepo interface {
	Upsert(site *models.Website) error
	Get(id string) (*models.Website, error)
}

// SiteFallback is the secondary, best-effort store used when the primary
// database write or read fails.
type SiteFallback interface {
	Save(ctx context.Context, site *models.Website)
	Get(ctx context.Context, id string) *models.Website
}

// TemplateAdmin is the admin surface over stored templates.
type TemplateAdmin interface {
	Insert(category, html string, variantID *int) (*models.CategoryTemplate, error)
	Delete(id uuid.UUID) error
	CountByCategory(category string) (int, error)
}

// AssetAdmin is the admin surface over the asset cache.
type AssetAdmin interface {
	Invalidate(category string) error
}

// API bundles the handler dependencies. Optional integrations (payments,
// site fallback) may be nil.
type API struct {
	assets    AssetResolver
	templates TemplateResolver
	payments  PaymentVerifier
	sites     WebsiteRepo
	fallback  SiteFallback
	tplAdmin  TemplateAdmin
	assAdmin  AssetAdmin
}

// NewAPI creates the API handler set.
func NewAPI(
	assets AssetResolver,
	templates TemplateResolver,
	payments PaymentVerifier,
	sites WebsiteRepo,
	fallback SiteFallback,
	tplAdmin TemplateAdmin,
	assAdmin AssetAdmin,
) *API {
	return &API{
		assets:    assets,
		templates: templates,
		payments:  payments,
		sites:     sites,
		fallback:  fallback,
		tplAdmin:  tplAdmin,
		assAdmin:  assAdmin,
	}
}

// errorResponse is the uniform error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// Health responds to liveness probes.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError sends the uniform error envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeBody parses a JSON request body into dst. Returns false after
// writing a 400 when the body is missing or malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "Missing body")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}

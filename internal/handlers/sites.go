// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"siteforge/internal/models"
)

// Site record storage locations reported to callers.
const (
	storageDatabase = "database"
	storageFallback = "fallback"
)

// saveSiteRequest is the body of POST /api/sites and PUT /api/sites/{id}.
type saveSiteRequest struct {
	ID   string         `json:"id"`
	Data map[string]any `json:"data"`
}

// saveSiteResponse reports where the record landed.
type saveSiteResponse struct {
	ID      string `json:"id"`
	Storage string `json:"storage"`
}

// SaveSite handles POST /api/sites. A missing id is generated server-side.
func (a *API) SaveSite(w http.ResponseWriter, r *http.Request) {
	var req saveSiteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Data == nil {
		writeError(w, http.StatusBadRequest, "Site data required")
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	a.persistSite(w, r, &req, http.StatusCreated)
}

// UpdateSite handles PUT /api/sites/{id}.
func (a *API) UpdateSite(w http.ResponseWriter, r *http.Request) {
	var req saveSiteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Data == nil {
		writeError(w, http.StatusBadRequest, "Site data required")
		return
	}
	req.ID = chi.URLParam(r, "id")
	a.persistSite(w, r, &req, http.StatusOK)
}

// persistSite writes to the primary store, degrading to the fallback
// store when the database is unavailable. Losing both is the only error.
func (a *API) persistSite(w http.ResponseWriter, r *http.Request, req *saveSiteRequest, okStatus int) {
	site := &models.Website{ID: req.ID, Data: req.Data}

	if err := a.sites.Upsert(site); err != nil {
		slog.Warn("site save failed, trying fallback store", "id", site.ID, "error", err)
		if a.fallback == nil {
			writeError(w, http.StatusInternalServerError, "Failed to save site")
			return
		}
		a.fallback.Save(r.Context(), site)
		writeJSON(w, okStatus, saveSiteResponse{ID: site.ID, Storage: storageFallback})
		return
	}

	writeJSON(w, okStatus, saveSiteResponse{ID: site.ID, Storage: storageDatabase})
}

// GetSite handles GET /api/sites/{id}. The fallback store is consulted
// when the primary store misses or errors.
func (a *API) GetSite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	site, err := a.sites.Get(id)
	if err != nil {
		slog.Warn("site read failed, trying fallback store", "id", id, "error", err)
	}
	if site == nil && a.fallback != nil {
		site = a.fallback.Get(r.Context(), id)
	}
	if site == nil {
		writeError(w, http.StatusNotFound, "Site not found")
		return
	}

	writeJSON(w, http.StatusOK, site)
}

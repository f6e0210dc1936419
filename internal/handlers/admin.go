// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"siteforge/internal/category"
	"siteforge/internal/engine"
	"siteforge/internal/models"
	"siteforge/internal/store"
)

// insertTemplateRequest is the body of POST /api/admin/templates.
type insertTemplateRequest struct {
	Category  string `json:"category"`
	HTML      string `json:"html"`
	VariantID *int   `json:"variant_id"`
}

// insertTemplateResponse confirms the stored variant and reports how
// many variants the category now has.
type insertTemplateResponse struct {
	Template *models.CategoryTemplate `json:"template"`
	Variants int                      `json:"variants"`
}

// InsertTemplate handles POST /api/admin/templates. Uploaded HTML goes
// through the same repair pass as generated templates so stored variants
// are uniform.
func (a *API) InsertTemplate(w http.ResponseWriter, r *http.Request) {
	var req insertTemplateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Category == "" {
		writeError(w, http.StatusBadRequest, "Category required")
		return
	}
	if req.HTML == "" {
		writeError(w, http.StatusBadRequest, "HTML required")
		return
	}

	key := category.Normalize(req.Category)
	tpl, err := a.tplAdmin.Insert(key, engine.Repair(req.HTML), req.VariantID)
	if err != nil {
		slog.Error("template insert failed", "category", key, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save template")
		return
	}

	count, err := a.tplAdmin.CountByCategory(key)
	if err != nil {
		slog.Warn("template count failed", "category", key, "error", err)
	}
	writeJSON(w, http.StatusCreated, insertTemplateResponse{Template: tpl, Variants: count})
}

// DeleteTemplate handles DELETE /api/admin/templates/{id}, removing a
// stored variant so random resolution can no longer serve it.
func (a *API) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid template id")
		return
	}

	if err := a.tplAdmin.Delete(id); err != nil {
		if errors.Is(err, store.ErrTemplateNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		slog.Error("template delete failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	slog.Info("template deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// InvalidateAssets handles DELETE /api/admin/assets/{category}. The next
// resolution request for the category regenerates from scratch.
func (a *API) InvalidateAssets(w http.ResponseWriter, r *http.Request) {
	key := category.Normalize(chi.URLParam(r, "category"))
	if key == "" {
		writeError(w, http.StatusBadRequest, "Category required")
		return
	}

	if err := a.assAdmin.Invalidate(key); err != nil {
		slog.Error("asset invalidation failed", "category", key, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to invalidate assets")
		return
	}

	slog.Info("asset cache invalidated", "category", key)
	w.WriteHeader(http.StatusNoContent)
}

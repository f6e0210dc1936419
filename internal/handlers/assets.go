// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"siteforge/internal/assets"
)

// generateAssetsRequest is the body of POST /api/generate-assets.
// mode "single" generates one image from prompt; the default mode
// resolves the full asset set for category.
type generateAssetsRequest struct {
	Category string `json:"category"`
	Prompt   string `json:"prompt"`
	Mode     string `json:"mode"`
}

// singleImageResponse is the success envelope of single mode.
type singleImageResponse struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
	Note   string `json:"note,omitempty"`
}

// GenerateAssets handles POST /api/generate-assets.
func (a *API) GenerateAssets(w http.ResponseWriter, r *http.Request) {
	var req generateAssetsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	slog.Info("asset generation request", "mode", req.Mode, "category", req.Category)

	if req.Mode == "single" {
		a.generateSingle(w, r, req.Prompt)
		return
	}

	if req.Category == "" {
		writeError(w, http.StatusBadRequest, "Category required")
		return
	}

	set, err := a.assets.Resolve(r.Context(), req.Category)
	if err != nil {
		if errors.Is(err, assets.ErrCategoryRequired) {
			writeError(w, http.StatusBadRequest, "Category required")
			return
		}
		slog.Error("asset resolution failed", "category", req.Category, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Per-slot failures already degraded to placeholder references inside
	// the set; the request itself still succeeded.
	writeJSON(w, http.StatusOK, set)
}

// generateSingle serves the manual generator tool. Generation failure is
// a hard 500; upload trouble degrades to an inline image with a note.
func (a *API) generateSingle(w http.ResponseWriter, r *http.Request, prompt string) {
	if prompt == "" {
		writeError(w, http.StatusBadRequest, "Prompt required")
		return
	}

	url, note, err := a.assets.GenerateSingle(r.Context(), prompt)
	if err != nil {
		slog.Error("single image generation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Generation Failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, singleImageResponse{URL: url, Prompt: prompt, Note: note})
}

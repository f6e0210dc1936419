// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"siteforge/internal/sitegen"
)

// generateTemplateRequest is the body of POST /api/generate-template.
// customPrompt only influences live generation; stored templates are
// served as saved.
type generateTemplateRequest struct {
	Category     string `json:"category"`
	CustomPrompt string `json:"customPrompt"`
}

// GenerateTemplate handles POST /api/generate-template. The response is
// the resolved template plus its source ("database" or "generated").
func (a *API) GenerateTemplate(w http.ResponseWriter, r *http.Request) {
	var req generateTemplateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Category == "" {
		writeError(w, http.StatusBadRequest, "Category required")
		return
	}

	result, err := a.templates.Resolve(r.Context(), req.Category, req.CustomPrompt)
	if err != nil {
		if errors.Is(err, sitegen.ErrNotFound) {
			writeError(w, http.StatusNotFound,
				fmt.Sprintf("No existing templates found for category: %s", req.Category))
			return
		}
		if errors.Is(err, sitegen.ErrCategoryRequired) {
			writeError(w, http.StatusBadRequest, "Category required")
			return
		}
		slog.Error("template resolution failed", "category", req.Category, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// SiteForge API. Routes split into the public generation API and the
// token-guarded admin group.
package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"siteforge/internal/handlers"
	"siteforge/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, adminTokenHash string) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// The builder frontend is served from a different origin (static
	// hosting), so the API answers cross-origin requests and preflights.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", api.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-assets", api.GenerateAssets)
		r.Post("/generate-template", api.GenerateTemplate)
		r.Get("/verify-payment", api.VerifyPayment)

		r.Route("/sites", func(r chi.Router) {
			r.Post("/", api.SaveSite)
			r.Get("/{id}", api.GetSite)
			r.Put("/{id}", api.UpdateSite)
		})

		// Admin routes — static bearer token, bcrypt-checked.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdminToken(adminTokenHash))
			r.Post("/templates", api.InsertTemplate)
			r.Delete("/templates/{id}", api.DeleteTemplate)
			r.Delete("/assets/{category}", api.InvalidateAssets)
		})
	})

	return r
}

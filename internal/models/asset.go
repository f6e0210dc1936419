// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the persisted data shapes shared between the
// stores, the resolvers, and the HTTP layer.
package models

import (
	"time"

	"github.com/google/uuid"
)

// AssetSet maps a semantic slot name (hero, team, service_N, gallery_N) to
// an image reference: a public URL, a data: URI, or a placeholder URL.
// Slot names are stable across regenerations so templates bind by name.
type AssetSet map[string]string

// AssetStatus records whether a cached asset set is fully rendered.
type AssetStatus string

const (
	// AssetStatusOK means every important slot holds a real image.
	AssetStatusOK AssetStatus = "ok"
	// AssetStatusPlaceholder means generation degraded and the set should
	// be regenerated on the next resolution request.
	AssetStatusPlaceholder AssetStatus = "placeholder"
)

// RequiredSlots is the fixed slot set every category resolves to, in
// generation order. Hero and team render wide; the rest are square.
var RequiredSlots = []string{
	"hero", "team",
	"service_0", "service_1", "service_2",
	"gallery_0", "gallery_1", "gallery_2",
}

// CachedAssetRecord is one category's cached asset set.
type CachedAssetRecord struct {
	ID        uuid.UUID   `json:"id"`
	Category  string      `json:"category"`
	Assets    AssetSet    `json:"assets"`
	Status    AssetStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

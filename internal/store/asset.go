// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"siteforge/internal/ai"
	"siteforge/internal/models"
)

// AssetStore handles the category → asset-set cache table.
type AssetStore struct {
	db *sql.DB
}

// NewAssetStore creates a new AssetStore with the given database connection.
func NewAssetStore(db *sql.DB) *AssetStore {
	return &AssetStore{db: db}
}

// Get retrieves the cached asset record for a category. Returns nil if no
// row exists.
func (s *AssetStore) Get(category string) (*models.CachedAssetRecord, error) {
	rec := &models.CachedAssetRecord{}
	var assetsJSON []byte
	err := s.db.QueryRow(`
		SELECT id, category, assets, status, created_at, updated_at
		FROM category_assets WHERE category = $1
	`, category).Scan(
		&rec.ID, &rec.Category, &assetsJSON, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category assets: %w", err)
	}

	if err := json.Unmarshal(assetsJSON, &rec.Assets); err != nil {
		return nil, fmt.Errorf("decode category assets: %w", err)
	}
	return rec, nil
}

// Put stores an asset set for a category using delete-then-insert inside a
// transaction. The table has a unique constraint on category; replacing the
// row wholesale avoids read-modify-write and tolerates concurrent writers
// with last-writer-wins semantics.
func (s *AssetStore) Put(category string, assets models.AssetSet, status models.AssetStatus) error {
	assetsJSON, err := json.Marshal(assets)
	if err != nil {
		return fmt.Errorf("encode category assets: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM category_assets WHERE category = $1`, category); err != nil {
		return fmt.Errorf("delete old category assets: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO category_assets (category, assets, status)
		VALUES ($1, $2, $3)
	`, category, assetsJSON, status); err != nil {
		return fmt.Errorf("insert category assets: %w", err)
	}

	return tx.Commit()
}

// Invalidate removes the cached asset set for a category. Removing a
// missing row is not an error.
func (s *AssetStore) Invalidate(category string) error {
	if _, err := s.db.Exec(`DELETE FROM category_assets WHERE category = $1`, category); err != nil {
		return fmt.Errorf("invalidate category assets: %w", err)
	}
	return nil
}

// Usable reports whether a cached record should satisfy a resolution
// request. Records written by this service carry an explicit status; legacy
// rows with an empty status fall back to checking the hero slot for a
// placeholder marker.
func Usable(rec *models.CachedAssetRecord) bool {
	if rec == nil || len(rec.Assets) == 0 {
		return false
	}
	if rec.Status != "" {
		return rec.Status == models.AssetStatusOK
	}
	return !ai.IsPlaceholder(rec.Assets["hero"])
}

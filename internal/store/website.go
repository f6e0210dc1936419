// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"siteforge/internal/models"
)

// WebsiteStore handles the websites table: saved site records keyed by a
// caller-supplied or generated id.
type WebsiteStore struct {
	db *sql.DB
}

// NewWebsiteStore creates a new WebsiteStore with the given database connection.
func NewWebsiteStore(db *sql.DB) *WebsiteStore {
	return &WebsiteStore{db: db}
}

// Upsert creates or replaces a site record. Embedded base64 images are
// stripped before the write so the row stays small.
func (s *WebsiteStore) Upsert(site *models.Website) error {
	site.StripEmbeddedImages()

	dataJSON, err := json.Marshal(site.Data)
	if err != nil {
		return fmt.Errorf("encode website data: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO websites (id, data)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data
	`, site.ID, dataJSON)
	if err != nil {
		return fmt.Errorf("upsert website: %w", err)
	}
	return nil
}

// Get retrieves a site record by id. Returns nil if not found.
func (s *WebsiteStore) Get(id string) (*models.Website, error) {
	site := &models.Website{}
	var dataJSON []byte
	err := s.db.QueryRow(`
		SELECT id, data, created_at FROM websites WHERE id = $1
	`, id).Scan(&site.ID, &dataJSON, &site.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get website: %w", err)
	}

	if err := json.Unmarshal(dataJSON, &site.Data); err != nil {
		return nil, fmt.Errorf("decode website data: %w", err)
	}
	return site, nil
}

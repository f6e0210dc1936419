// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"siteforge/internal/models"
)

// ErrTemplateNotFound is returned by Delete when no row matches the id.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateStore handles the category_templates table.
type TemplateStore struct {
	db *sql.DB
}

// NewTemplateStore creates a new TemplateStore with the given database connection.
func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

// ListByCategory returns all template variants stored for a category,
// oldest first.
func (s *TemplateStore) ListByCategory(category string) ([]models.CategoryTemplate, error) {
	rows, err := s.db.Query(`
		SELECT id, category, html, variant_id, created_at
		FROM category_templates
		WHERE category = $1
		ORDER BY created_at
	`, category)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []models.CategoryTemplate
	for rows.Next() {
		var t models.CategoryTemplate
		if err := rows.Scan(&t.ID, &t.Category, &t.HTML, &t.VariantID, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// Insert stores a new template variant for a category.
func (s *TemplateStore) Insert(category, html string, variantID *int) (*models.CategoryTemplate, error) {
	result := &models.CategoryTemplate{}
	err := s.db.QueryRow(`
		INSERT INTO category_templates (category, html, variant_id)
		VALUES ($1, $2, $3)
		RETURNING id, category, html, variant_id, created_at
	`, category, html, variantID).Scan(
		&result.ID, &result.Category, &result.HTML, &result.VariantID, &result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}
	return result, nil
}

// Delete removes a template variant by ID.
func (s *TemplateStore) Delete(id uuid.UUID) error {
	result, err := s.db.Exec(`DELETE FROM category_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

// CountByCategory returns how many variants exist for a category.
func (s *TemplateStore) CountByCategory(category string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM category_templates WHERE category = $1`, category).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count templates: %w", err)
	}
	return count, nil
}

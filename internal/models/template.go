// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryTemplate is one stored HTML template variant for a category.
// Multiple variants may exist per category; resolution picks one at random.
type CategoryTemplate struct {
	ID        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	HTML      string    `json:"html"`
	VariantID *int      `json:"variant_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

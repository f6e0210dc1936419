// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// Website is one saved site record: company info, selected HTML, and any
// custom image overrides, stored as a free-form JSON document.
type Website struct {
	ID        string         `json:"id"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

// StripEmbeddedImages removes data: URIs from the customImages override map
// so large base64 blobs never reach persistent storage. Assets are
// re-fetched by category when missing, so dropping them is safe.
func (w *Website) StripEmbeddedImages() {
	raw, ok := w.Data["customImages"].(map[string]any)
	if !ok {
		return
	}
	clean := make(map[string]any, len(raw))
	for key, val := range raw {
		s, isString := val.(string)
		if isString && strings.HasPrefix(s, "data:") {
			continue
		}
		clean[key] = val
	}
	w.Data["customImages"] = clean
}

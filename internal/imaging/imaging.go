// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging normalizes generated images to PNG using libvips.
// Backends return whatever encoding their API produces (PNG, JPEG, WebP);
// everything is converted before upload so stored assets have one format.
package imaging

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/davidbyttow/govips/v2/vips"
)

// pngSignature is the 8-byte magic prefix of a PNG file.
var pngSignature = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

// Startup initialises the libvips library. Call once at application start.
// concurrency controls the number of libvips worker threads (0 = auto).
func Startup(concurrency int) {
	cfg := &vips.Config{
		ConcurrencyLevel: concurrency,
		MaxCacheSize:     100,
		MaxCacheMem:      50 * 1024 * 1024, // 50 MB
	}
	vips.LoggingSettings(nil, vips.LogLevelWarning)
	vips.Startup(cfg)
	slog.Info("libvips started", "version", vips.Version)
}

// Shutdown releases libvips resources. Call at application shutdown.
func Shutdown() {
	vips.Shutdown()
}

// IsPNG reports whether data already carries the PNG signature.
func IsPNG(data []byte) bool {
	return bytes.HasPrefix(data, pngSignature)
}

// ToPNG converts an image of any libvips-supported format to PNG.
// Data that is already PNG passes through untouched.
func ToPNG(data []byte) ([]byte, error) {
	if IsPNG(data) {
		return data, nil
	}

	img, err := vips.NewImageFromBuffer(data)
	if err != nil {
		return nil, fmt.Errorf("imaging: decode failed: %w", err)
	}
	defer img.Close()

	// Auto-rotate based on EXIF orientation before stripping metadata.
	if err := img.AutoRotate(); err != nil {
		return nil, fmt.Errorf("imaging: autorotate: %w", err)
	}

	params := vips.NewPngExportParams()
	params.StripMetadata = true

	buf, _, err := img.ExportPng(params)
	if err != nil {
		return nil, fmt.Errorf("imaging: png export: %w", err)
	}
	return buf, nil
}

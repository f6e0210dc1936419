// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import "testing"

func TestIsPNG(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x00}
	if !IsPNG(png) {
		t.Error("valid PNG signature not recognized")
	}

	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	if IsPNG(jpeg) {
		t.Error("JPEG bytes misidentified as PNG")
	}

	if IsPNG(nil) {
		t.Error("nil data misidentified as PNG")
	}
}

func TestToPNG_PassthroughForPNG(t *testing.T) {
	// A PNG-signed buffer must pass through without touching libvips,
	// so this works even when libvips is not initialised.
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0x01, 0x02}
	got, err := ToPNG(png)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if string(got) != string(png) {
		t.Error("PNG input must pass through unchanged")
	}
}

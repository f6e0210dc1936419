// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engine

import (
	"strings"
	"testing"
)

func TestRepairStripsCodeFences(t *testing.T) {
	in := "```html\n<head></head><body><h1>Hi</h1></body>\n```"
	out := Repair(in)
	if strings.Contains(out, "```") {
		t.Errorf("fences not stripped: %q", out)
	}
	if !strings.Contains(out, "<h1>Hi</h1>") {
		t.Errorf("content lost: %q", out)
	}
}

func TestRepairInjectsHeadAssets(t *testing.T) {
	out := Repair(`<head><title>x</title></head><body></body>`)
	for _, want := range []string{"cdn.tailwindcss.com", "font-awesome", "fonts.googleapis.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in repaired head", want)
		}
	}

	// Assets land inside the existing head, not before it.
	if strings.Index(out, "cdn.tailwindcss.com") < strings.Index(out, "<head>") {
		t.Error("assets injected outside head")
	}
}

func TestRepairSynthesizesHeadWhenAbsent(t *testing.T) {
	out := Repair(`<body><p>no head here</p></body>`)
	if !strings.HasPrefix(out, "<head>") {
		t.Errorf("expected synthesized head, got %q", out[:30])
	}
	if !strings.Contains(out, "cdn.tailwindcss.com") {
		t.Error("tailwind not injected into synthesized head")
	}
}

func TestRepairSkipsInjectionWhenTailwindPresent(t *testing.T) {
	in := `<head><script src="https://cdn.tailwindcss.com"></script></head><body></body>`
	out := Repair(in)
	if strings.Count(out, "cdn.tailwindcss.com") != 1 {
		t.Error("tailwind injected twice")
	}
}

func TestRepairWrapsNakedPhotoTokens(t *testing.T) {
	out := Repair(`<body><div>[DESC_PHOTO: modern office lobby]</div></body>`)
	if !strings.Contains(out, `<img src="[DESC_PHOTO: modern office lobby]" alt="modern office lobby Image"`) {
		t.Errorf("naked token not wrapped: %q", out)
	}
}

func TestRepairWrapsTokenAfterClassAttribute(t *testing.T) {
	// A closing quote from a preceding attribute must not suppress the
	// wrap; only a quote directly before the token means it already sits
	// inside an attribute value.
	out := Repair(`<body><div class="hero">[DESC_PHOTO: Hero]</div></body>`)
	if !strings.Contains(out, `<img src="[DESC_PHOTO: Hero]" alt="Hero Image"`) {
		t.Errorf("token after quoted attribute not wrapped: %q", out)
	}
}

func TestRepairLeavesTokenInsideSrcAlone(t *testing.T) {
	in := `<body><img src="[DESC_PHOTO: team at work]" alt="team at work Image" class="w-full"></body>`
	out := Repair(in)
	if strings.Count(out, "<img") != 1 {
		t.Errorf("token inside src attribute was re-wrapped: %q", out)
	}
}

func TestRepairLeavesTokenInsideCSSURLAlone(t *testing.T) {
	in := `<body><div style="background-image: url([DESC_PHOTO: city skyline])"></div></body>`
	out := Repair(in)
	if strings.Contains(out, "<img") {
		t.Errorf("token inside url() was wrapped: %q", out)
	}
}

func TestRepairMovesTokenFromAltToSrc(t *testing.T) {
	in := `<body><img alt="[DESC_PHOTO: storefront]" class="h-64"></body>`
	out := Repair(in)
	if !strings.Contains(out, `src="[DESC_PHOTO: storefront]"`) {
		t.Errorf("token not moved to src: %q", out)
	}
	if !strings.Contains(out, `alt="storefront Image"`) {
		t.Errorf("alt not rewritten: %q", out)
	}
}

func TestRepairAddsNetlifyFormAttribute(t *testing.T) {
	out := Repair(`<body><form class="space-y-4"><input name="email"></form></body>`)
	if !strings.Contains(out, `<form class="space-y-4" data-netlify="true">`) {
		t.Errorf("form attribute missing: %q", out)
	}

	// Bare form tag too.
	out = Repair(`<body><form><input></form></body>`)
	if !strings.Contains(out, `<form data-netlify="true">`) {
		t.Errorf("bare form attribute missing: %q", out)
	}
}

func TestRepairIsIdempotent(t *testing.T) {
	in := "```html\n<body>[DESC_PHOTO: warehouse floor]<form><input></form></body>\n```"
	once := Repair(in)
	twice := Repair(once)
	if once != twice {
		t.Errorf("second pass changed output:\nfirst:  %q\nsecond: %q", once, twice)
	}
}

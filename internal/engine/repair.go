// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engine post-processes model-generated HTML so it renders
// correctly in a browser: stripping markdown fences, injecting the CDN
// assets every generated page relies on, and normalizing photo
// placeholder tokens into image tags. Repair is idempotent; running it
// on already-repaired HTML is a no-op.
package engine

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	tailwindScript = `<script src="https://cdn.tailwindcss.com"></script>`
	fontAwesomeCSS = `<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css">`
	interFontCSS   = `<link href="https://fonts.googleapis.com/css2?family=Inter:wght@300;400;500;600;700;800&display=swap" rel="stylesheet">`

	photoImgClass = "w-full h-64 object-cover rounded-xl shadow-lg my-8"
)

var (
	codeFence    = regexp.MustCompile("(?s)```(?:html)?\\s*(.*?)```")
	headOpenTag  = regexp.MustCompile(`(?i)<head[^>]*>`)
	photoToken   = regexp.MustCompile(`\[DESC_PHOTO:\s*([^\]]+)\]`)
	photoAltAttr = regexp.MustCompile(`alt="(\[DESC_PHOTO:\s*[^\]]+\])"`)
	formOpenTag  = regexp.MustCompile(`(?i)<form(\s[^>]*)?>`)
)

// Repair runs the full post-processing pass over generated HTML.
func Repair(html string) string {
	html = stripFences(html)
	html = ensureHeadAssets(html)
	html = wrapNakedPhotoTokens(html)
	html = fixPhotoAltAttributes(html)
	html = ensureNetlifyForms(html)
	return strings.TrimSpace(html)
}

// stripFences unwraps markdown code fences the model sometimes emits
// around the document.
func stripFences(html string) string {
	if m := codeFence.FindStringSubmatch(html); m != nil {
		return strings.TrimSpace(m[1])
	}
	return html
}

// ensureHeadAssets injects the Tailwind runtime, Font Awesome and the
// Inter font into <head>. When the document has no head at all, one is
// synthesized in front of the content.
func ensureHeadAssets(html string) string {
	if strings.Contains(html, "cdn.tailwindcss.com") {
		return html
	}

	assets := fmt.Sprintf("\n%s\n%s\n%s\n", tailwindScript, fontAwesomeCSS, interFontCSS)

	if loc := headOpenTag.FindStringIndex(html); loc != nil {
		return html[:loc[1]] + assets + html[loc[1]:]
	}
	return "<head>" + assets + "</head>\n" + html
}

// wrapNakedPhotoTokens turns a bare [DESC_PHOTO: X] token sitting in the
// document text into an <img> element. Tokens already inside an
// attribute or CSS value are left alone, detected by inspecting the
// characters just before the token.
func wrapNakedPhotoTokens(html string) string {
	matches := photoToken.FindAllStringSubmatchIndex(html, -1)
	if matches == nil {
		return html
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		desc := strings.TrimSpace(html[m[2]:m[3]])

		if insideAttribute(html, start) {
			continue
		}

		b.WriteString(html[last:start])
		token := fmt.Sprintf("[DESC_PHOTO: %s]", desc)
		b.WriteString(fmt.Sprintf(`<img src="%s" alt="%s Image" class="%s">`, token, desc, photoImgClass))
		last = end
	}
	if last == 0 {
		return html
	}
	b.WriteString(html[last:])
	return b.String()
}

// insideAttribute reports whether the token starting at pos is already
// part of an attribute value or a CSS url() reference. Only the single
// character directly before the token marks a quoted context; a quote
// further back is just the end of some earlier attribute (class="..."
// precedes nearly every token in Tailwind output).
func insideAttribute(html string, pos int) bool {
	if pos > 0 {
		switch html[pos-1] {
		case '"', '\'', '(':
			return true
		}
	}
	from := pos - 10
	if from < 0 {
		from = 0
	}
	prefix := html[from:pos]
	return strings.Contains(prefix, "src=") || strings.Contains(prefix, "url(")
}

// fixPhotoAltAttributes rewrites images that carry the placeholder token
// in alt instead of src, a common model mistake.
func fixPhotoAltAttributes(html string) string {
	return photoAltAttr.ReplaceAllStringFunc(html, func(attr string) string {
		m := photoAltAttr.FindStringSubmatch(attr)
		token := m[1]
		desc := strings.TrimSpace(photoToken.FindStringSubmatch(token)[1])
		return fmt.Sprintf(`src="%s" alt="%s Image"`, token, desc)
	})
}

// ensureNetlifyForms adds the data-netlify attribute to every form so
// submissions are captured by the hosting platform.
func ensureNetlifyForms(html string) string {
	return formOpenTag.ReplaceAllStringFunc(html, func(tag string) string {
		if strings.Contains(tag, "data-netlify") {
			return tag
		}
		return tag[:len(tag)-1] + ` data-netlify="true">`
	})
}

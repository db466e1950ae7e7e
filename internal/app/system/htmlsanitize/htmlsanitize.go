// Package htmlsanitize strips markup from member-entered text.
//
// Tasting notes are plain text. They are echoed back to other members and
// scanned for flavor keywords, so any markup is removed before storage.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/dalemusser/bourbonclub/internal/domain/models"
	"github.com/microcosm-cc/bluemonday"
)

// strict removes every element; script and style bodies are dropped entirely.
var strict = bluemonday.StrictPolicy()

// PlainText returns s with all markup removed and surrounding space trimmed.
// Entities are decoded so "A &amp; B" and "A & B" store the same.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// IsPlainText reports whether s contains no tags.
func IsPlainText(s string) bool {
	return !strings.Contains(s, "<") || !strings.Contains(s, ">")
}

// Notes returns n with every field passed through PlainText.
func Notes(n models.ReviewNotes) models.ReviewNotes {
	return models.ReviewNotes{
		Appearance: PlainText(n.Appearance),
		Nose:       PlainText(n.Nose),
		Palate:     PlainText(n.Palate),
		Mouthfeel:  PlainText(n.Mouthfeel),
		Finish:     PlainText(n.Finish),
		General:    PlainText(n.General),
	}
}

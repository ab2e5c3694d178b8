// Package seo holds the pure building blocks of the dynamic SEO pipeline:
// slug normalization, template rendering and slug-to-entity resolution.
package seo

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespace   = regexp.MustCompile(`\s+`)
	dashRuns     = regexp.MustCompile(`-+`)
)

// Normalize converts a display name into its URL slug. The step order
// matters: the ampersand is dropped before the general character sweep so
// "Food & Beverage" becomes "food-beverage" rather than "food--beverage".
// The transform is lossy; distinct names may collapse to the same slug.
func Normalize(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, "&", "")
	slug = nonSlugChars.ReplaceAllString(slug, "")
	slug = whitespace.ReplaceAllString(slug, "-")
	slug = dashRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

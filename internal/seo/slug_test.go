package seo

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Teknologi Informasi":   "teknologi-informasi",
		"Food & Beverage":       "food-beverage",
		"  Jakarta   Selatan!!": "jakarta-selatan",
		"Jakarta Selatan":       "jakarta-selatan",
		"D.I. Yogyakarta":       "di-yogyakarta",
		"":                      "",
		"---":                   "",
		"R&D":                   "rd",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, Normalize(input), "input %q", input)
	}
}

func TestNormalizeShape(t *testing.T) {
	slugShape := regexp.MustCompile(`^$|^[a-z0-9]+(-[a-z0-9]+)*$`)
	inputs := []string{
		"Pemasaran & Penjualan",
		"IT / Software",
		"  spaced   out  ",
		"Ünïcödé Stuff",
		"123 Numbers!",
	}
	for _, input := range inputs {
		slug := Normalize(input)
		assert.Regexp(t, slugShape, slug, "input %q", input)
		assert.NotContains(t, slug, "--", "input %q", input)
	}
}

func TestNormalizeIdempotentOnSlugs(t *testing.T) {
	for _, input := range []string{"jakarta-selatan", "food-beverage", "it"} {
		assert.Equal(t, input, Normalize(input))
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	first := Normalize("Teknologi Informasi & Komunikasi")
	second := Normalize("Teknologi Informasi & Komunikasi")
	assert.Equal(t, first, second)
}

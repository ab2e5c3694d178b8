package seo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	result := Render("Lowongan Kerja {{kategori}} - {{site_title}}", map[string]string{
		"kategori":   "IT",
		"site_title": "Nexjob",
	})
	assert.Equal(t, "Lowongan Kerja IT - Nexjob", result)
}

func TestRenderUnresolvedPlaceholderLeftVerbatim(t *testing.T) {
	assert.Equal(t, "{{missing}}", Render("{{missing}}", map[string]string{}))
	assert.Equal(t, "a {{x}} b", Render("a {{x}} b", nil))
}

func TestRenderReplacesAllOccurrences(t *testing.T) {
	result := Render("{{t}} dan {{t}} dan {{t}}", map[string]string{"t": "x"})
	assert.Equal(t, "x dan x dan x", result)
}

func TestRenderIgnoresExtraVars(t *testing.T) {
	result := Render("hanya {{satu}}", map[string]string{"satu": "ini", "dua": "itu"})
	assert.Equal(t, "hanya ini", result)
}

func TestRenderNoRecursiveExpansion(t *testing.T) {
	result := Render("{{a}} {{b}}", map[string]string{"a": "{{b}}", "b": "X"})
	assert.Equal(t, "{{b}} X", result)
}

func TestRenderUnterminatedPlaceholder(t *testing.T) {
	assert.Equal(t, "abc {{def", Render("abc {{def", map[string]string{"def": "x"}))
}

func TestRenderEmptyTemplate(t *testing.T) {
	assert.Equal(t, "", Render("", map[string]string{"k": "v"}))
}

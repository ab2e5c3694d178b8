package seo

import "strings"

// Render substitutes {{key}} placeholders in template with values from vars.
// Unknown placeholders are left verbatim and substituted values are never
// re-scanned, so a value containing {{...}} is inserted as-is.
func Render(template string, vars map[string]string) string {
	if template == "" || !strings.Contains(template, "{{") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))

	rest := template
	for {
		open := strings.Index(rest, "{{")
		if open < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end := strings.Index(rest[open:], "}}")
		if end < 0 {
			b.WriteString(rest)
			return b.String()
		}
		end += open

		key := rest[open+2 : end]
		if value, ok := vars[key]; ok {
			b.WriteString(rest[:open])
			b.WriteString(value)
		} else {
			b.WriteString(rest[:end+2])
		}
		rest = rest[end+2:]
	}
}

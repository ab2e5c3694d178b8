package dto

// PageMeta is the rendered SEO tuple consumed by the page layer.
type PageMeta struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	CanonicalName string `json:"canonical_name,omitempty"`
	EntityType    string `json:"entity_type,omitempty"`
	OGImage       string `json:"og_image,omitempty"`
}

// AdCodeResponse carries the snippet for a single placement.
type AdCodeResponse struct {
	Position string `json:"position"`
	Code     string `json:"code"`
}

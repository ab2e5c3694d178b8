package models

import "github.com/nexjob/nexjob-api/internal/seo"

// FilterData is a point-in-time snapshot of the canonical category and
// location names aggregated by the upstream job-listing API. It is
// recomputed per request from upstream data and never persisted here.
type FilterData struct {
	Categories []string       `json:"categories"`
	Provinces  []seo.Province `json:"provinces"`
}

package seo

// LocationType distinguishes the two location namespaces.
type LocationType string

const (
	LocationProvince LocationType = "province"
	LocationCity     LocationType = "city"
)

// Province groups a province display name with its cities. A slice keeps the
// upstream scan order deterministic, unlike a map.
type Province struct {
	Name   string   `json:"name"`
	Cities []string `json:"cities"`
}

// LocationMatch is the resolved location entity for a slug.
type LocationMatch struct {
	Name string
	Type LocationType
}

// ResolveCategory returns the first category whose normalized name equals
// slug, scanning candidates in the given order.
func ResolveCategory(slug string, categories []string) (string, bool) {
	for _, category := range categories {
		if Normalize(category) == slug {
			return category, true
		}
	}
	return "", false
}

// ResolveLocation matches slug against province names first, then against
// cities within each province, always in the given order. Provinces
// therefore win when a city and a province collapse to the same slug; that
// precedence is pinned by tests and must not change silently.
func ResolveLocation(slug string, provinces []Province) (LocationMatch, bool) {
	for _, province := range provinces {
		if Normalize(province.Name) == slug {
			return LocationMatch{Name: province.Name, Type: LocationProvince}, true
		}
	}
	for _, province := range provinces {
		for _, city := range province.Cities {
			if Normalize(city) == slug {
				return LocationMatch{Name: city, Type: LocationCity}, true
			}
		}
	}
	return LocationMatch{}, false
}

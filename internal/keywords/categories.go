// internal/keywords/categories.go
package keywords

import "strings"

// Category is the closed enumeration of preference categories. Each carries
// its descriptive phrase for prompts and its catalog of searchable keywords.
type Category int

const (
	CategoryOutdoor Category = iota
	CategoryIndoorRelaxation
	CategoryCultural
	CategoryCulinary
)

// categoryOrder fixes the canonical declaration order used for fingerprints
// and fallback concatenation.
var categoryOrder = []Category{
	CategoryOutdoor,
	CategoryIndoorRelaxation,
	CategoryCultural,
	CategoryCulinary,
}

func (c Category) Name() string {
	switch c {
	case CategoryOutdoor:
		return "outdoorAdventure"
	case CategoryIndoorRelaxation:
		return "indoorRelaxation"
	case CategoryCultural:
		return "culturalExploration"
	case CategoryCulinary:
		return "culinaryDelights"
	}
	return "unknown"
}

// Phrase is the human-readable rendering embedded in generator prompts.
func (c Category) Phrase() string {
	switch c {
	case CategoryOutdoor:
		return "outdoor adventures (parks, hiking, sports, outdoor activities)"
	case CategoryIndoorRelaxation:
		return "indoor relaxation (cafes, spas, libraries, quiet indoor spaces)"
	case CategoryCultural:
		return "cultural exploration (museums, galleries, historical sites, cultural centers)"
	case CategoryCulinary:
		return "culinary delights (restaurants, food markets, cooking classes, bakeries)"
	}
	return ""
}

// Keywords is the fallback catalog for the category.
func (c Category) Keywords() []string {
	switch c {
	case CategoryOutdoor:
		return []string{"park", "hiking trail", "outdoor sports", "garden", "beach"}
	case CategoryIndoorRelaxation:
		return []string{"cafe", "spa", "library", "bookstore", "tea house"}
	case CategoryCultural:
		return []string{"museum", "gallery", "theater", "historical site", "cultural center"}
	case CategoryCulinary:
		return []string{"restaurant", "food market", "bakery", "wine bar", "cooking school"}
	}
	return nil
}

// PreferenceFlags is the set of user preference toggles. The zero value
// means "no preference": a balanced mix, not zero results.
type PreferenceFlags struct {
	OutdoorAdventure    bool `json:"outdoorAdventure"`
	IndoorRelaxation    bool `json:"indoorRelaxation"`
	CulturalExploration bool `json:"culturalExploration"`
	CulinaryDelights    bool `json:"culinaryDelights"`
}

func (f PreferenceFlags) enabled(c Category) bool {
	switch c {
	case CategoryOutdoor:
		return f.OutdoorAdventure
	case CategoryIndoorRelaxation:
		return f.IndoorRelaxation
	case CategoryCultural:
		return f.CulturalExploration
	case CategoryCulinary:
		return f.CulinaryDelights
	}
	return false
}

// Enabled returns the enabled categories in canonical order.
func (f PreferenceFlags) Enabled() []Category {
	var out []Category
	for _, c := range categoryOrder {
		if f.enabled(c) {
			out = append(out, c)
		}
	}
	return out
}

// Fingerprint derives the cache-key fragment for the flags: the underscore
// join of enabled category names in canonical order, or "all" when none are
// enabled.
func (f PreferenceFlags) Fingerprint() string {
	enabled := f.Enabled()
	if len(enabled) == 0 {
		return "all"
	}
	names := make([]string, len(enabled))
	for i, c := range enabled {
		names[i] = c.Name()
	}
	return strings.Join(names, "_")
}

// indoorLeaning is the keyword set favored in bad or extreme weather.
func indoorLeaning() map[string]bool {
	set := make(map[string]bool)
	for _, c := range []Category{CategoryIndoorRelaxation, CategoryCultural, CategoryCulinary} {
		for _, kw := range c.Keywords() {
			set[kw] = true
		}
	}
	return set
}

// defaultKeywords is the last-resort list when filtering empties everything.
var defaultKeywords = []string{
	"restaurant", "cafe", "museum", "gallery", "park", "theater", "shopping", "spa",
}

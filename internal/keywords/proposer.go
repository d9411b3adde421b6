// internal/keywords/proposer.go
package keywords

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/48d31kh413k/NavixAI/internal/common/logger"
	"github.com/48d31kh413k/NavixAI/internal/models"
)

// Generator is the pluggable keyword-proposal backend: prompt in, free text
// out. Best effort; any failure drops the proposer to its deterministic
// fallback.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Proposer turns (weather, preferences, count) into an ordered list of
// distinct activity keywords. It never returns an empty list and never
// returns an error to the caller.
type Proposer struct {
	gen    Generator // nil means no AI backend configured
	logger logger.Logger
}

func NewProposer(gen Generator, log logger.Logger) *Proposer {
	return &Proposer{
		gen:    gen,
		logger: log.With(map[string]interface{}{"component": "keywords"}),
	}
}

// validSearchTerms is the allow-list of provider-searchable substrings.
var validSearchTerms = []string{
	"restaurant", "cafe", "coffee shop", "bar", "pub", "brewery",
	"museum", "art gallery", "library", "theater", "cinema", "movie theater",
	"park", "beach", "hiking trail", "garden", "zoo", "aquarium",
	"shopping mall", "store", "market", "bookstore", "clothing store",
	"gym", "spa", "bowling alley", "arcade", "mini golf",
	"hotel", "tourist attraction", "landmark", "church", "temple",
	"hospital", "pharmacy", "bank", "post office",
	"nightclub", "karaoke", "concert venue", "sports bar",
	"food court", "bakery", "ice cream shop", "fast food",
}

// commonSingleWords are accepted as exact matches even without an allow-list
// substring.
var commonSingleWords = map[string]bool{
	"restaurant": true, "cafe": true, "museum": true, "park": true,
	"cinema": true, "shopping": true, "bar": true, "gym": true, "spa": true,
}

var (
	numberingRe = regexp.MustCompile(`(?m)^\d+\.\s*`)
	bulletRe    = regexp.MustCompile(`(?m)^[\-\*]\s*`)
	splitRe     = regexp.MustCompile(`[,;\n]`)
)

// Propose returns at most maxCount distinct keywords, generator first,
// deterministic fallback otherwise.
func (p *Proposer) Propose(ctx context.Context, snapshot *models.WeatherSnapshot, maxCount int, prefs PreferenceFlags) []string {
	if maxCount < 1 {
		maxCount = 1
	}

	if p.gen == nil {
		return p.fallback(snapshot, maxCount, prefs)
	}

	prompt := p.buildPrompt(snapshot, maxCount, prefs)
	text, err := p.gen.Generate(ctx, prompt)
	if err != nil {
		p.logger.Warn("generator failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return p.fallback(snapshot, maxCount, prefs)
	}

	valid := dedupe(filterValid(parseResponse(text)))
	if len(valid) < 2 {
		p.logger.Warn("generator returned too few valid keywords, using fallback", map[string]interface{}{
			"validCount": len(valid),
		})
		return p.fallback(snapshot, maxCount, prefs)
	}

	if len(valid) > maxCount {
		valid = valid[:maxCount]
	}
	return valid
}

// dedupe removes repeated keywords, first occurrence wins.
func dedupe(keywords []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, kw := range keywords {
		if !seen[kw] {
			seen[kw] = true
			out = append(out, kw)
		}
	}
	return out
}

func (p *Proposer) buildPrompt(snapshot *models.WeatherSnapshot, maxCount int, prefs PreferenceFlags) string {
	preferenceText := "User has no specific preferences - suggest a variety of activities."
	if enabled := prefs.Enabled(); len(enabled) > 0 {
		phrases := make([]string, len(enabled))
		for i, c := range enabled {
			phrases[i] = c.Phrase()
		}
		preferenceText = fmt.Sprintf("User Preferences (focus on these categories):\n%s", strings.Join(phrases, ", "))
	}

	return fmt.Sprintf(`Given the weather conditions and user preferences, suggest %d different activities for someone to do.

Weather: %s
Temperature: %.1f°C
Location: %s
Humidity: %d%%

%s

Rules:
1. Respond with ONLY activity keywords separated by commas
2. Use map-searchable terms (e.g., "restaurant", "museum", "park", "cafe", "shopping mall", "cinema", "spa", "gallery")
3. Prioritize activities matching user preferences
4. Consider weather when suggesting outdoor vs indoor activities
5. Provide exactly %d different activities
6. Include a diverse mix: outdoor activities, cultural venues (museums, galleries, theaters), dining, and relaxation spots
7. No explanations, just the comma-separated keywords

Example format: restaurant, museum, park, cafe, shopping mall`,
		maxCount,
		snapshot.Description,
		snapshot.TemperatureC,
		snapshot.LocationName,
		snapshot.HumidityPct,
		preferenceText,
		maxCount,
	)
}

// parseResponse cleans generator free text into candidate tokens: numbering
// and bullets stripped, split on comma/semicolon/newline, lowercased,
// trimmed, tokens shorter than 3 characters dropped.
func parseResponse(text string) []string {
	cleaned := numberingRe.ReplaceAllString(text, "")
	cleaned = bulletRe.ReplaceAllString(cleaned, "")

	var out []string
	for _, raw := range splitRe.Split(cleaned, -1) {
		token := strings.ToLower(strings.TrimSpace(raw))
		if len(token) > 2 {
			out = append(out, token)
		}
	}
	return out
}

// filterValid keeps tokens containing an allow-listed searchable term, or
// exactly matching a common single word.
func filterValid(tokens []string) []string {
	var out []string
	for _, token := range tokens {
		if commonSingleWords[token] {
			out = append(out, token)
			continue
		}
		for _, term := range validSearchTerms {
			if strings.Contains(token, term) {
				out = append(out, token)
				break
			}
		}
	}
	return out
}

// fallback is the deterministic rule-based proposal: preference-selected (or
// balanced) catalog concatenation, weather refiltering, first-seen dedup,
// capped at maxCount, hardcoded default list if everything filtered away.
func (p *Proposer) fallback(snapshot *models.WeatherSnapshot, maxCount int, prefs PreferenceFlags) []string {
	var available []string
	for _, c := range prefs.Enabled() {
		available = append(available, c.Keywords()...)
	}

	if len(available) == 0 {
		// Balanced seed: two from each category, then the remainder of the
		// catalog in declaration order.
		seen := make(map[string]bool)
		for _, c := range categoryOrder {
			kws := c.Keywords()
			for _, kw := range kws[:2] {
				available = append(available, kw)
				seen[kw] = true
			}
		}
		for _, c := range categoryOrder {
			for _, kw := range c.Keywords() {
				if !seen[kw] {
					available = append(available, kw)
				}
			}
		}
	}

	unique := dedupe(refilterByWeather(available, snapshot, maxCount))

	if len(unique) == 0 {
		unique = append(unique, defaultKeywords...)
	}
	if len(unique) > maxCount {
		unique = unique[:maxCount]
	}
	return unique
}

// refilterByWeather narrows the candidate list for the current conditions.
// Rain/storm wins over temperature; the rain branch pads back from the full
// list when the indoor subset is too small.
func refilterByWeather(available []string, snapshot *models.WeatherSnapshot, maxCount int) []string {
	if snapshot == nil {
		return available
	}

	indoor := indoorLeaning()
	condition := strings.ToLower(snapshot.ConditionCode)
	temp := snapshot.TemperatureC

	switch {
	case strings.Contains(condition, "rain") || strings.Contains(condition, "storm"):
		var filtered []string
		kept := make(map[string]bool)
		for _, kw := range available {
			if indoor[kw] {
				filtered = append(filtered, kw)
				kept[kw] = true
			}
		}
		if len(filtered) < maxCount {
			for _, kw := range available {
				if !kept[kw] {
					filtered = append(filtered, kw)
				}
			}
		}
		return filtered

	case temp > 30:
		// Indoor plus shaded outdoor.
		var filtered []string
		for _, kw := range available {
			if indoor[kw] {
				filtered = append(filtered, kw)
			}
		}
		for _, kw := range available {
			if !indoor[kw] && strings.Contains(kw, "park") {
				filtered = append(filtered, kw)
			}
		}
		return filtered

	case temp > 20:
		return available

	case temp < 5:
		var filtered []string
		for _, kw := range available {
			if indoor[kw] {
				filtered = append(filtered, kw)
			}
		}
		return filtered

	default:
		return available
	}
}

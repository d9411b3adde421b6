// internal/keywords/proposer_test.go
package keywords

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/48d31kh413k/NavixAI/internal/common/logger"
	"github.com/48d31kh413k/NavixAI/internal/models"
)

type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func snapshot(condition string, tempC float64) *models.WeatherSnapshot {
	return &models.WeatherSnapshot{
		ConditionCode: condition,
		Description:   strings.ToLower(condition),
		TemperatureC:  tempC,
		HumidityPct:   60,
		LocationName:  "Testville",
	}
}

func assertWellFormed(t *testing.T, keywords []string, maxCount int) {
	t.Helper()
	assert.NotEmpty(t, keywords)
	assert.LessOrEqual(t, len(keywords), maxCount)
	seen := make(map[string]bool)
	for _, kw := range keywords {
		assert.False(t, seen[kw], "duplicate keyword %q", kw)
		seen[kw] = true
	}
}

func TestProposeFallbackWellFormed(t *testing.T) {
	p := NewProposer(nil, logger.NewNoOpLogger())

	tests := []struct {
		name     string
		snapshot *models.WeatherSnapshot
		maxCount int
		prefs    PreferenceFlags
	}{
		{"mild no prefs", snapshot("Clear", 22), 5, PreferenceFlags{}},
		{"rain no prefs", snapshot("Rain", 15), 5, PreferenceFlags{}},
		{"hot culinary", snapshot("Clear", 34), 3, PreferenceFlags{CulinaryDelights: true}},
		{"cold outdoor only", snapshot("Snow", -2), 4, PreferenceFlags{OutdoorAdventure: true}},
		{"max one", snapshot("Clouds", 18), 1, PreferenceFlags{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Propose(context.Background(), tc.snapshot, tc.maxCount, tc.prefs)
			assertWellFormed(t, got, tc.maxCount)
		})
	}
}

func TestProposeRainExcludesOutdoor(t *testing.T) {
	p := NewProposer(nil, logger.NewNoOpLogger())

	got := p.Propose(context.Background(), snapshot("Rain", 15), 5, PreferenceFlags{})

	outdoor := make(map[string]bool)
	for _, kw := range CategoryOutdoor.Keywords() {
		outdoor[kw] = true
	}
	for _, kw := range got {
		assert.False(t, outdoor[kw], "outdoor keyword %q proposed in rain", kw)
	}
}

func TestProposeColdIndoorOnly(t *testing.T) {
	p := NewProposer(nil, logger.NewNoOpLogger())

	got := p.Propose(context.Background(), snapshot("Snow", 2), 6, PreferenceFlags{})

	indoor := indoorLeaning()
	for _, kw := range got {
		assert.True(t, indoor[kw], "non-indoor keyword %q proposed below 5°C", kw)
	}
}

func TestProposeHotKeepsParks(t *testing.T) {
	p := NewProposer(nil, logger.NewNoOpLogger())

	got := p.Propose(context.Background(), snapshot("Clear", 33), 10, PreferenceFlags{OutdoorAdventure: true})

	// Only shaded outdoor survives heat; everything kept must be indoor or
	// contain "park".
	indoor := indoorLeaning()
	for _, kw := range got {
		if !indoor[kw] {
			assert.Contains(t, kw, "park")
		}
	}
}

func TestProposeGeneratorOutputUsed(t *testing.T) {
	gen := &stubGenerator{text: "1. restaurant\n2. museum\n3. park\n4. cafe\n5. shopping mall"}
	p := NewProposer(gen, logger.NewNoOpLogger())

	got := p.Propose(context.Background(), snapshot("Clear", 22), 3, PreferenceFlags{})

	assert.Equal(t, []string{"restaurant", "museum", "park"}, got)
}

func TestProposeGeneratorDuplicatesRemoved(t *testing.T) {
	gen := &stubGenerator{text: "cafe, cafe, museum, museum, park"}
	p := NewProposer(gen, logger.NewNoOpLogger())

	got := p.Propose(context.Background(), snapshot("Clear", 22), 5, PreferenceFlags{})

	assert.Equal(t, []string{"cafe", "museum", "park"}, got)
}

func TestProposeGeneratorDuplicatesRemovedBeforeCap(t *testing.T) {
	// Repeats must not eat into the cap: three distinct terms survive a
	// heavily repetitive completion even with maxCount 3.
	gen := &stubGenerator{text: "cafe, cafe, cafe, museum, cafe, park, museum"}
	p := NewProposer(gen, logger.NewNoOpLogger())

	got := p.Propose(context.Background(), snapshot("Clear", 22), 3, PreferenceFlags{})

	assert.Equal(t, []string{"cafe", "museum", "park"}, got)
}

func TestProposeGeneratorErrorFallsBack(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	p := NewProposer(gen, logger.NewNoOpLogger())

	got := p.Propose(context.Background(), snapshot("Clear", 22), 5, PreferenceFlags{})
	assertWellFormed(t, got, 5)
}

func TestProposeTooFewValidKeywordsFallsBack(t *testing.T) {
	gen := &stubGenerator{text: "go outside and enjoy yourself, maybe a walk"}
	p := NewProposer(gen, logger.NewNoOpLogger())

	got := p.Propose(context.Background(), snapshot("Clear", 22), 5, PreferenceFlags{})
	assertWellFormed(t, got, 5)
	// The free-form answer has no searchable terms; the deterministic list
	// must not contain it.
	assert.NotContains(t, got, "go outside and enjoy yourself")
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"comma separated", "restaurant, museum, park", []string{"restaurant", "museum", "park"}},
		{"numbered lines", "1. cafe\n2. spa", []string{"cafe", "spa"}},
		{"bullets and case", "- Museum\n* Art Gallery", []string{"museum", "art gallery"}},
		{"short tokens dropped", "ok, cafe, a", []string{"cafe"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseResponse(tc.in))
		})
	}
}

func TestFilterValid(t *testing.T) {
	in := []string{"nice restaurant downtown", "shopping", "go for a walk", "bowling alley", "xyz"}
	got := filterValid(in)
	assert.Equal(t, []string{"nice restaurant downtown", "shopping", "bowling alley"}, got)
}

func TestPreferenceFingerprint(t *testing.T) {
	tests := []struct {
		name  string
		flags PreferenceFlags
		want  string
	}{
		{"none", PreferenceFlags{}, "all"},
		{"one", PreferenceFlags{CulturalExploration: true}, "culturalExploration"},
		{
			"canonical order regardless of struct order",
			PreferenceFlags{CulinaryDelights: true, OutdoorAdventure: true},
			"outdoorAdventure_culinaryDelights",
		},
		{
			"all flags",
			PreferenceFlags{OutdoorAdventure: true, IndoorRelaxation: true, CulturalExploration: true, CulinaryDelights: true},
			"outdoorAdventure_indoorRelaxation_culturalExploration_culinaryDelights",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.flags.Fingerprint())
		})
	}
}

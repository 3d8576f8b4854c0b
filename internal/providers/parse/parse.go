// Package parse classifies transcript text into themes, vibes, intent,
// subtext, traits, and buckets using keyword/regex rule tables. The tables
// are lookup data, not an algorithm: swap them freely.
package parse

import (
	"strings"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
)

// Fallback labels applied when no rule matches. Every slice field of a
// ParsedEntry is non-empty, always.
const (
	DefaultTheme  = "daily reflection"
	DefaultVibe   = "reflective"
	DefaultTrait  = "observant"
	DefaultBucket = "reflection"

	DefaultIntent  = "share and reflect"
	DefaultSubtext = "processing the day"
)

// Parser turns raw transcript text into a ParsedEntry.
type Parser interface {
	Parse(text string) models.ParsedEntry
}

// RuleParser is the static-table implementation of Parser.
type RuleParser struct{}

func NewRuleParser() *RuleParser { return &RuleParser{} }

func (p *RuleParser) Parse(text string) models.ParsedEntry {
	lowered := strings.ToLower(text)

	parsed := models.ParsedEntry{
		Themes:  matchLabels(themeRules, lowered),
		Vibes:   matchLabels(vibeRules, lowered),
		Traits:  matchLabels(traitRules, lowered),
		Buckets: matchLabels(bucketRules, lowered),
		Intent:  firstLabel(intentRules, lowered, DefaultIntent),
		Subtext: firstLabel(subtextRules, lowered, DefaultSubtext),
	}

	if len(parsed.Themes) == 0 {
		parsed.Themes = []string{DefaultTheme}
	}
	if len(parsed.Vibes) == 0 {
		parsed.Vibes = []string{DefaultVibe}
	}
	if len(parsed.Traits) == 0 {
		parsed.Traits = []string{DefaultTrait}
	}
	if len(parsed.Buckets) == 0 {
		parsed.Buckets = []string{DefaultBucket}
	}
	return parsed
}

func matchLabels(rules []rule, lowered string) []string {
	var out []string
	for _, r := range rules {
		if r.re.MatchString(lowered) {
			out = append(out, r.label)
		}
	}
	return out
}

func firstLabel(rules []rule, lowered, fallback string) string {
	for _, r := range rules {
		if r.re.MatchString(lowered) {
			return r.label
		}
	}
	return fallback
}

// Package respond picks the short empathetic reply for a processed entry.
//
// This is a decision table, not a generator: first-entry vs returning-user
// tables keyed by primary vibe, plus an optional carry-in theme suffix.
// Selection within a bucket is randomized through an injectable source so
// tests can seed it; only the length bound and the bucket are contractual.
package respond

import (
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
)

// MaxLen is the hard bound on reply length, counted in runes.
const MaxLen = 55

// truncateAt leaves room for the "..." loss marker.
const truncateAt = 52

// Selector chooses replies. Zero value is not usable; call NewSelector.
type Selector struct {
	rng *rand.Rand
}

// NewSelector returns a selector drawing from rng. A nil rng gets a
// time-seeded source.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: rng}
}

// Select returns a reply of 1..MaxLen runes for the parsed entry.
func (s *Selector) Select(parsed models.ParsedEntry, firstEntry, carryIn bool) string {
	vibe := parsed.PrimaryVibe()
	if vibe == "" {
		vibe = "reflective"
	}

	table := returningTable
	fallback := returningFallback
	if firstEntry {
		table = firstEntryTable
		fallback = firstEntryFallback
	}

	options, ok := table[vibe]
	if !ok || len(options) == 0 {
		options = fallback
	}
	reply := options[s.rng.Intn(len(options))]

	if carryIn && !firstEntry {
		if suffix, ok := carryInSuffix[parsed.PrimaryTheme()]; ok {
			// lossy on purpose: the suffix is dropped when it would
			// break the bound
			if utf8.RuneCountInString(reply)+utf8.RuneCountInString(suffix) <= MaxLen {
				reply += suffix
			}
		}
	}

	return clamp(reply)
}

// clamp enforces MaxLen defensively; curated tables should never trip it.
func clamp(reply string) string {
	if utf8.RuneCountInString(reply) <= MaxLen {
		return reply
	}
	runes := []rune(reply)
	return strings.TrimRight(string(runes[:truncateAt]), " ") + "..."
}

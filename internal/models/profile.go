package models

import (
	"time"

	"github.com/lib/pq"
)

// TopThemeCount is how many theme labels TopThemes keeps.
const TopThemeCount = 3

// UserProfile is the cumulative per-user aggregate. Counts only grow;
// the only way to shrink anything is a full reset (row deletion).
//
// ThemeOrder and VibeOrder record the first-seen order of the count-map
// keys. Top-theme and dominant-vibe ties are broken by that order, so the
// derived fields stay stable across a database round-trip instead of
// depending on map iteration.
type UserProfile struct {
	UserID string `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`

	ThemeCount  map[string]int `gorm:"column:theme_count;type:jsonb;serializer:json" json:"theme_count"`
	VibeCount   map[string]int `gorm:"column:vibe_count;type:jsonb;serializer:json" json:"vibe_count"`
	BucketCount map[string]int `gorm:"column:bucket_count;type:jsonb;serializer:json" json:"bucket_count"`

	ThemeOrder pq.StringArray `gorm:"column:theme_order;type:text[]" json:"theme_order"`
	VibeOrder  pq.StringArray `gorm:"column:vibe_order;type:text[]" json:"vibe_order"`

	TopThemes    pq.StringArray `gorm:"column:top_themes;type:text[]" json:"top_themes"`
	DominantVibe string         `gorm:"column:dominant_vibe;type:text" json:"dominant_vibe"`

	TraitPool pq.StringArray `gorm:"column:trait_pool;type:text[]" json:"trait_pool"`
	LastTheme string         `gorm:"column:last_theme;type:text" json:"last_theme"`

	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (UserProfile) TableName() string { return "profiles" }

// NewUserProfile returns the empty profile for a user.
func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:      userID,
		ThemeCount:  map[string]int{},
		VibeCount:   map[string]int{},
		BucketCount: map[string]int{},
	}
}

// Apply folds one parsed entry into the aggregate. Called exactly once per
// processed entry.
func (p *UserProfile) Apply(parsed ParsedEntry) {
	if p.ThemeCount == nil {
		p.ThemeCount = map[string]int{}
	}
	if p.VibeCount == nil {
		p.VibeCount = map[string]int{}
	}
	if p.BucketCount == nil {
		p.BucketCount = map[string]int{}
	}

	for _, theme := range parsed.Themes {
		if _, seen := p.ThemeCount[theme]; !seen {
			p.ThemeOrder = append(p.ThemeOrder, theme)
		}
		p.ThemeCount[theme]++
	}
	for _, vibe := range parsed.Vibes {
		if _, seen := p.VibeCount[vibe]; !seen {
			p.VibeOrder = append(p.VibeOrder, vibe)
		}
		p.VibeCount[vibe]++
	}
	for _, bucket := range parsed.Buckets {
		p.BucketCount[bucket]++
	}
	for _, trait := range parsed.Traits {
		if !containsLabel(p.TraitPool, trait) {
			p.TraitPool = append(p.TraitPool, trait)
		}
	}

	p.TopThemes = topByCount(p.ThemeCount, p.ThemeOrder, TopThemeCount)
	p.DominantVibe = ""
	if top := topByCount(p.VibeCount, p.VibeOrder, 1); len(top) > 0 {
		p.DominantVibe = top[0]
	}

	if len(parsed.Themes) > 0 {
		p.LastTheme = parsed.Themes[0]
	}
}

func containsLabel(labels []string, want string) bool {
	for _, l := range labels {
		if l == want {
			return true
		}
	}
	return false
}

// topByCount ranks the first-seen label order by count descending and takes
// the top k. Sorting the order slice instead of the map keys keeps ties at
// first-seen-wins.
func topByCount(counts map[string]int, order []string, k int) []string {
	ranked := make([]string, 0, len(order))
	ranked = append(ranked, order...)

	// stable insertion sort by count desc; the slice is already in
	// tie-break order, so equal counts keep their relative position
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && counts[ranked[j]] > counts[ranked[j-1]]; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

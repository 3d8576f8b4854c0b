package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// ParsedEntry is the rule-based classification of one transcript.
// The label slices are never empty: the parser applies fallback labels
// when no rule matches.
type ParsedEntry struct {
	Themes  pq.StringArray `gorm:"column:themes;type:text[]" json:"themes"`
	Vibes   pq.StringArray `gorm:"column:vibes;type:text[]" json:"vibes"`
	Intent  string         `gorm:"column:intent;type:text" json:"intent"`
	Subtext string         `gorm:"column:subtext;type:text" json:"subtext"`
	Traits  pq.StringArray `gorm:"column:traits;type:text[]" json:"traits"`
	Buckets pq.StringArray `gorm:"column:buckets;type:text[]" json:"buckets"`
}

// PrimaryTheme returns the first theme label.
func (p ParsedEntry) PrimaryTheme() string {
	if len(p.Themes) == 0 {
		return ""
	}
	return p.Themes[0]
}

// PrimaryVibe returns the first vibe label.
func (p ParsedEntry) PrimaryVibe() string {
	if len(p.Vibes) == 0 {
		return ""
	}
	return p.Vibes[0]
}

// Entry is one processed diary transcript. Rows are immutable after insert.
type Entry struct {
	ID        string          `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	UserID    string          `gorm:"column:user_id;type:uuid;index" json:"user_id"`
	RawText   string          `gorm:"column:raw_text;type:text" json:"raw_text"`
	Embedding pgvector.Vector `gorm:"column:embedding;type:vector(384)" json:"embedding"`

	Parsed ParsedEntry `gorm:"embedded" json:"parsed"`

	// carry-in diagnostics captured at processing time
	Signals datatypes.JSON `gorm:"column:signals;type:jsonb" json:"signals"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;index" json:"created_at"`
}

func (Entry) TableName() string { return "entries" }

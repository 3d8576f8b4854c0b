package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PipelineTrace is the per-entry diagnostic record. Stored in Mongo with a
// TTL index; losing traces never affects entry processing.
type PipelineTrace struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EntryID string             `bson:"entry_id" json:"entry_id"`
	UserID  string             `bson:"user_id" json:"user_id"` // uuid from Supabase Auth

	MaxSimilarity float64 `bson:"max_similarity" json:"max_similarity"`
	ThemeOverlap  bool    `bson:"theme_overlap" json:"theme_overlap"`
	CarryIn       bool    `bson:"carry_in" json:"carry_in"`
	Degraded      bool    `bson:"degraded,omitempty" json:"degraded,omitempty"` // similarity scorer unavailable
	FirstEntry    bool    `bson:"first_entry" json:"first_entry"`

	ProcessingTimeMS int64     `bson:"processing_time_ms" json:"processing_time_ms"`
	Timestamp        time.Time `bson:"timestamp" json:"timestamp"`

	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"` // for TTL index
}

package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
)

// Store groups the writes that must land together. The pipeline commits
// exactly one entry insert plus one profile upsert per processed transcript,
// or neither.
type Store interface {
	SaveEntryAndProfile(ctx context.Context, e *models.Entry, p *models.UserProfile) error
	ResetUser(ctx context.Context, userID string) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) SaveEntryAndProfile(ctx context.Context, e *models.Entry, p *models.UserProfile) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		return upsertProfile(tx, p)
	})
}

// ResetUser drops the entry log and the profile in one transaction; the
// next entry for the user behaves like a first-ever entry.
func (s *gormStore) ResetUser(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Entry{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.UserProfile{}).Error
	})
}

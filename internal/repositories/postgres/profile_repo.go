package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/utils"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
	Upsert(ctx context.Context, p *models.UserProfile) error
}

// profileUpdateColumns is everything but the primary key.
var profileUpdateColumns = []string{
	"theme_count", "vibe_count", "bucket_count",
	"theme_order", "vibe_order", "top_themes",
	"dominant_vibe", "trait_pool", "last_theme", "updated_at",
}

type profileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &p, err
}

func (r *profileRepo) Upsert(ctx context.Context, p *models.UserProfile) error {
	return upsertProfile(r.db.WithContext(ctx), p)
}

func upsertProfile(db *gorm.DB, p *models.UserProfile) error {
	return db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(profileUpdateColumns),
		}).
		Create(p).Error
}

package postgres

import (
	"context"
	"errors"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/utils"
)

type EntryRepository interface {
	Insert(ctx context.Context, e *models.Entry) error
	GetByID(ctx context.Context, id string) (*models.Entry, error)
	LatestN(ctx context.Context, userID string, n int) ([]models.Entry, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	MaxSimilarity(ctx context.Context, userID string, embedding pgvector.Vector, n int) (float64, error)
}

type entryRepo struct {
	db *gorm.DB
}

func NewEntryRepo(db *gorm.DB) EntryRepository {
	return &entryRepo{db: db}
}

func (r *entryRepo) Insert(ctx context.Context, e *models.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *entryRepo) GetByID(ctx context.Context, id string) (*models.Entry, error) {
	var row models.Entry
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrNotFound
	}
	return &row, err
}

// LatestN returns up to n entries, most-recent-first.
func (r *entryRepo) LatestN(ctx context.Context, userID string, n int) ([]models.Entry, error) {
	if n <= 0 {
		n = 5
	}
	var rows []models.Entry
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(n).
		Find(&rows).Error
	return rows, err
}

func (r *entryRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Entry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// MaxSimilarity pushes the cosine comparison into pgvector: best similarity
// between the given embedding and the user's n newest entries.
func (r *entryRepo) MaxSimilarity(ctx context.Context, userID string, embedding pgvector.Vector, n int) (float64, error) {
	if n <= 0 {
		n = 5
	}
	var best float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(1 - (w.embedding <=> ?)), 0)
		FROM (
			SELECT embedding FROM entries
			WHERE user_id = ?
			ORDER BY created_at DESC
			LIMIT ?
		) w`, embedding, userID, n).
		Scan(&best).Error
	return best, err
}

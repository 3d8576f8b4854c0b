package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
)

type TraceRepository interface {
	Insert(ctx context.Context, t *models.PipelineTrace) error
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.PipelineTrace, error)
}

type traceRepo struct {
	col *mongo.Collection
	ttl time.Duration
}

func NewTraceRepo(db *mongo.Database, ttl time.Duration) TraceRepository {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &traceRepo{col: db.Collection("pipeline_traces"), ttl: ttl}
}

func (r *traceRepo) Insert(ctx context.Context, t *models.PipelineTrace) error {
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
	if t.ExpiresAt.IsZero() {
		t.ExpiresAt = t.Timestamp.Add(r.ttl)
	}
	_, err := r.col.InsertOne(ctx, t)
	return err
}

func (r *traceRepo) ListByUser(ctx context.Context, userID string, limit int64) ([]models.PipelineTrace, error) {
	if limit <= 0 {
		limit = 100
	}

	cur, err := r.col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}}).
			SetLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.PipelineTrace
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

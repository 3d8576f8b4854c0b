package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/vk573reddy/sentari-transcript-empathy/config"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/api/handlers"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/api/middleware"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/api/routes"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/cache"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/carryin"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/logger"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/providers/embed"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/providers/parse"
	mongorepo "github.com/vk573reddy/sentari-transcript-empathy/internal/repositories/mongo"
	pgrepo "github.com/vk573reddy/sentari-transcript-empathy/internal/repositories/postgres"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/services"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/storage"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/workers"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()

	// PostgreSQL is the system of record and is required.
	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.MigratePostgres(); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}
	log.Info("PostgreSQL connected")

	// Redis backs the profile cache and the archive stream; both degrade
	// gracefully, so a missing REDIS_ADDR is a warning, not a fatal.
	var c cache.Cache
	var archive services.ArchiveQueue
	if err := config.InitRedis(); err != nil {
		log.WithError(err).Warn("Redis unavailable; caching and archival disabled")
	} else {
		log.Info("Redis connected")
		c = cache.NewRedisCache(config.RedisClient)
		archive = &workers.RedisArchiveQueue{Redis: config.RedisClient}
	}

	// Mongo holds short-lived pipeline traces for the admin endpoint.
	var traces mongorepo.TraceRepository
	if os.Getenv("MONGO_URI") != "" {
		if err := config.InitMongo(); err != nil {
			log.WithError(err).Warn("MongoDB unavailable; pipeline traces disabled")
		} else {
			log.Info("MongoDB connected")
			if err := config.EnsureMongoIndexes(); err != nil {
				log.WithError(err).Warn("failed to ensure Mongo indexes")
			}
			traces = mongorepo.NewTraceRepo(config.MongoDatabase(), 0)
		}
	}

	entryRepo := pgrepo.NewEntryRepo(config.PostgresDB)
	profileRepo := pgrepo.NewProfileRepo(config.PostgresDB)
	store := pgrepo.NewStore(config.PostgresDB)

	embedder := buildEmbedder(log)

	detector := carryin.NewDetector()
	detector.Scorer = services.NewRepoScorer(entryRepo, services.DefaultWindowSize)

	entrySvc := services.NewEntryService(services.EntryServiceDeps{
		Entries:  entryRepo,
		Profiles: profileRepo,
		Store:    store,
		Embedder: embedder,
		Parser:   parse.NewRuleParser(),
		Detector: detector,
		Traces:   traces,
		Cache:    c,
		Archive:  archive,
		Logger:   log,
	})
	profileSvc := services.NewProfileService(profileRepo, store, c)

	// Archive worker pool: needs both redis and a GCS bucket.
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" && config.RedisClient != nil {
		uploader, err := storage.NewGCSUploader(context.Background(), bucket)
		if err != nil {
			log.WithError(err).Warn("GCS unavailable; archive workers disabled")
		} else {
			pool := &workers.ArchiveWorkerPool{
				Redis:      config.RedisClient,
				Uploader:   uploader,
				NumWorkers: 2,
				Logger:     log,
			}
			if err := pool.Start(context.Background()); err != nil {
				log.WithError(err).Warn("archive worker pool failed to start")
			} else {
				log.Info("archive worker pool started")
			}
		}
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	routes.RegisterRoutes(r, routes.Deps{
		Entry:   handlers.NewEntryHandler(entrySvc),
		Profile: handlers.NewProfileHandler(profileSvc),
		Trace:   handlers.NewTraceHandler(traces),
		WS:      handlers.NewWSHandler(entrySvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildEmbedder picks the embedding backend. The deterministic hash
// embedder is the default; Vertex AI is opt-in via EMBED_PROVIDER=vertex.
func buildEmbedder(log *logrus.Logger) embed.Provider {
	if os.Getenv("EMBED_PROVIDER") != "vertex" {
		return embed.NewHashEmbedder()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	project := os.Getenv("GCP_PROJECT_ID")
	location := os.Getenv("GCP_LOCATION")
	model := os.Getenv("EMBED_MODEL")
	v, err := embed.NewVertexEmbedder(ctx, project, location, model)
	if err != nil {
		log.Fatalf("Vertex embedder init error: %v", err)
	}
	return v
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/cache"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/carryin"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/models"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/providers/embed"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/providers/parse"
	mongorepo "github.com/vk573reddy/sentari-transcript-empathy/internal/repositories/mongo"
	pgrepo "github.com/vk573reddy/sentari-transcript-empathy/internal/repositories/postgres"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/respond"
	"github.com/vk573reddy/sentari-transcript-empathy/internal/utils"
)

// EmptyMarker stands in for input that trims to nothing. Empty transcripts
// still run the whole pipeline and get a valid reply.
const EmptyMarker = "(silence)"

// DefaultWindowSize is the recency window bound N.
const DefaultWindowSize = 5

// ProcessResult is what callers of Process get back.
type ProcessResult struct {
	EntryID      string `json:"entry_id"`
	ResponseText string `json:"response_text"`
	CarryIn      bool   `json:"carry_in"`
}

// ArchiveQueue hands a processed transcript to the archival pipeline.
// Enqueue failures are logged and swallowed; archival is best-effort.
type ArchiveQueue interface {
	EnqueueTranscript(ctx context.Context, entryID, userID, text string) error
}

type EntryService interface {
	Process(ctx context.Context, userID, rawText string) (*ProcessResult, error)
	Recent(ctx context.Context, userID string, n int) ([]models.Entry, error)
	Count(ctx context.Context, userID string) (int64, error)
}

// EntryServiceDeps wires the pipeline. Traces, Cache, and Archive may be
// nil; processing never depends on them.
type EntryServiceDeps struct {
	Entries  pgrepo.EntryRepository
	Profiles pgrepo.ProfileRepository
	Store    pgrepo.Store

	Embedder embed.Provider
	Parser   parse.Parser
	Detector *carryin.Detector
	Selector *respond.Selector

	Traces  mongorepo.TraceRepository
	Cache   cache.Cache
	Archive ArchiveQueue

	Logger     *logrus.Logger
	WindowSize int
}

type entryService struct {
	d EntryServiceDeps

	// one mutex per user: two overlapping Process calls for the same user
	// would both read a stale window/profile and lose an update
	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

func NewEntryService(d EntryServiceDeps) EntryService {
	if d.WindowSize <= 0 {
		d.WindowSize = DefaultWindowSize
	}
	if d.Detector == nil {
		d.Detector = carryin.NewDetector()
	}
	if d.Selector == nil {
		d.Selector = respond.NewSelector(nil)
	}
	if d.Logger == nil {
		d.Logger = logrus.New()
	}
	return &entryService{d: d, locks: map[string]*sync.Mutex{}}
}

func (s *entryService) userLock(userID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	mu, ok := s.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[userID] = mu
	}
	return mu
}

// Process runs one transcript through the full pipeline: embed, window,
// profile, parse, carry-in, aggregate, persist, respond. Exactly one entry
// insert and one profile update per successful call; a failing collaborator
// leaves both stores untouched.
func (s *entryService) Process(ctx context.Context, userID, rawText string) (*ProcessResult, error) {
	const op = "EntryService.Process"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	started := time.Now()

	content := strings.TrimSpace(rawText)
	if content == "" {
		content = EmptyMarker
	}

	vec, err := s.d.Embedder.Embed(ctx, content)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "embedding failed", err)
	}

	recent, err := s.d.Entries.LatestN(ctx, userID, s.d.WindowSize)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to load recency window", err)
	}

	profile, err := s.d.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeInternal, op, "failed to load profile", err)
		}
		profile = models.NewUserProfile(userID)
	}

	parsed := s.d.Parser.Parse(content)

	decision := s.d.Detector.Detect(ctx, userID, parsed, vec, recent)

	now := time.Now().UTC()
	profile.Apply(parsed)
	profile.UpdatedAt = now

	signals, _ := json.Marshal(decision)
	entry := &models.Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		RawText:   content,
		Embedding: pgvector.NewVector(vec),
		Parsed:    parsed,
		Signals:   datatypes.JSON(signals),
		CreatedAt: now,
	}

	if err := s.d.Store.SaveEntryAndProfile(ctx, entry, profile); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist entry", err)
	}

	// the window was read under the user lock, so an empty window means
	// this entry is the user's first
	isFirst := len(recent) == 0

	response := s.d.Selector.Select(parsed, isFirst, decision.CarryIn)

	log := s.d.Logger.WithFields(logrus.Fields{
		"user_id":        userID,
		"entry_id":       entry.ID,
		"carry_in":       decision.CarryIn,
		"theme_overlap":  decision.ThemeOverlap,
		"max_similarity": decision.MaxSimilarity,
		"degraded":       decision.Degraded,
		"first_entry":    isFirst,
	})
	log.Info("entry processed")

	if s.d.Cache != nil {
		_ = s.d.Cache.Del(ctx, profileCacheKey(userID))
	}

	if s.d.Traces != nil {
		trace := &models.PipelineTrace{
			EntryID:          entry.ID,
			UserID:           userID,
			MaxSimilarity:    decision.MaxSimilarity,
			ThemeOverlap:     decision.ThemeOverlap,
			CarryIn:          decision.CarryIn,
			Degraded:         decision.Degraded,
			FirstEntry:       isFirst,
			ProcessingTimeMS: time.Since(started).Milliseconds(),
			Timestamp:        now,
		}
		if terr := s.d.Traces.Insert(ctx, trace); terr != nil {
			log.WithError(terr).Warn("trace insert failed")
		}
	}

	if s.d.Archive != nil {
		if aerr := s.d.Archive.EnqueueTranscript(ctx, entry.ID, userID, content); aerr != nil {
			log.WithError(aerr).Warn("archive enqueue failed")
		}
	}

	return &ProcessResult{
		EntryID:      entry.ID,
		ResponseText: response,
		CarryIn:      decision.CarryIn,
	}, nil
}

func (s *entryService) Recent(ctx context.Context, userID string, n int) ([]models.Entry, error) {
	const op = "EntryService.Recent"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	rows, err := s.d.Entries.LatestN(ctx, userID, n)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list entries", err)
	}
	return rows, nil
}

func (s *entryService) Count(ctx context.Context, userID string) (int64, error) {
	const op = "EntryService.Count"

	if userID == "" {
		return 0, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}

	count, err := s.d.Entries.CountByUser(ctx, userID)
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to count entries", err)
	}
	return count, nil
}

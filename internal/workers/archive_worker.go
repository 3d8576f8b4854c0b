package workers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/vk573reddy/sentari-transcript-empathy/internal/storage"
)

const (
	DefaultStream = "archive:stream"
	DefaultGroup  = "archive-workers"
)

// RedisArchiveQueue is the producer side: it satisfies
// services.ArchiveQueue by pushing transcript jobs onto the redis stream.
type RedisArchiveQueue struct {
	Redis  *redis.Client
	Stream string
}

func (q *RedisArchiveQueue) EnqueueTranscript(ctx context.Context, entryID, userID, text string) error {
	stream := q.Stream
	if stream == "" {
		stream = DefaultStream
	}
	return q.Redis.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"entry_id": entryID,
			"user_id":  userID,
			"text":     text,
			"ts_unix":  strconv.FormatInt(time.Now().UTC().Unix(), 10),
		},
	}).Err()
}

// ArchiveWorkerPool drains the stream through a consumer group and writes
// each transcript to object storage.
type ArchiveWorkerPool struct {
	Redis      *redis.Client
	Uploader   storage.Uploader
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *ArchiveWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Uploader == nil {
		return errors.New("ArchiveWorkerPool missing dependency: Redis/Uploader must be set")
	}
	if p.Stream == "" {
		p.Stream = DefaultStream
	}
	if p.Group == "" {
		p.Group = DefaultGroup
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *ArchiveWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *ArchiveWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	getStr := func(k string) string {
		v, ok := msg.Values[k]
		if !ok || v == nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}

	entryID := getStr("entry_id")
	userID := getStr("user_id")
	text := getStr("text")
	if entryID == "" || userID == "" {
		return
	}

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id": msg.ID,
		"entry_id": entryID,
		"user_id":  userID,
	})

	object := "transcripts/" + userID + "/" + entryID + ".txt"
	path, err := p.Uploader.Upload(ctx, object, "text/plain; charset=utf-8", strings.NewReader(text))
	if err != nil {
		log.WithError(err).Warn("transcript archive failed")
		return
	}
	log.WithField("path", path).Debug("transcript archived")
}

package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pybotlabs/pybot-api/internal/domain/lesson"
	"github.com/pybotlabs/pybot-api/pkg/logger"
)

const lessonCatalogKey = "lessons:catalog"

// cachedLessonRepo decorates a lesson.Repository with a Redis cache.
// The catalog changes rarely, every request reads it, and a TTL is
// enough freshness. Cache failures fall through to the inner repo.
type cachedLessonRepo struct {
	inner  lesson.Repository
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedLessonRepo(inner lesson.Repository, rdb *redis.Client, ttl time.Duration, logger logger.Logger) lesson.Repository {
	return &cachedLessonRepo{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

func (r *cachedLessonRepo) ListLessons(ctx context.Context) ([]lesson.Lesson, error) {
	cached, err := r.rdb.Get(ctx, lessonCatalogKey).Bytes()
	if err == nil {
		var lessons []lesson.Lesson
		if err := json.Unmarshal(cached, &lessons); err == nil {
			return lessons, nil
		}
		r.logger.Warn("Dropping corrupt lesson catalog cache entry", zap.Error(err))
		r.rdb.Del(ctx, lessonCatalogKey)
	} else if err != redis.Nil {
		r.logger.Warn("Lesson catalog cache read failed", zap.Error(err))
	}

	lessons, err := r.inner.ListLessons(ctx)
	if err != nil {
		return nil, err
	}

	if bytes, err := json.Marshal(lessons); err == nil {
		if err := r.rdb.Set(ctx, lessonCatalogKey, bytes, r.ttl).Err(); err != nil {
			r.logger.Warn("Lesson catalog cache write failed", zap.Error(err))
		}
	}

	return lessons, nil
}

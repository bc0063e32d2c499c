package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tahoefourseasons/itinerary-api/internal/types"
)

// Ensure implementation satisfies the interface
var _ Store = (*RedisStore)(nil)

// RedisStore shares cached itineraries across instances. Errors degrade to a
// miss; the cache must never fail a request.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*types.Itinerary, bool) {
	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.WarnContext(ctx, "Cache lookup failed, treating as miss",
				slog.String("key", key),
				slog.Any("error", err))
		}
		return nil, false
	}

	var itinerary types.Itinerary
	if err := json.Unmarshal([]byte(raw), &itinerary); err != nil {
		s.logger.WarnContext(ctx, "Cached itinerary not parseable, treating as miss",
			slog.String("key", key),
			slog.Any("error", err))
		return nil, false
	}
	return &itinerary, true
}

func (s *RedisStore) Set(ctx context.Context, key string, itinerary *types.Itinerary) {
	raw, err := json.Marshal(itinerary)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to marshal itinerary for cache", slog.Any("error", err))
		return
	}
	if err := s.client.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "Failed to store itinerary in cache",
			slog.String("key", key),
			slog.Any("error", err))
	}
}

package duty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nanami9426/officerchat/internal/models"
	"github.com/nanami9426/officerchat/internal/utils"
	"github.com/redis/go-redis/v9"
)

type cachedUnit struct {
	Unit *models.Unit `json:"unit"`
}

// CachedResolver keeps active units in Redis for a short TTL. Off-duty
// answers are cached as well. Any cache failure falls through to the inner
// resolver.
type CachedResolver struct {
	inner  Resolver
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewCachedResolver(inner Resolver, client *redis.Client, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		inner:  inner,
		client: client,
		prefix: "duty:active",
		ttl:    ttl,
	}
}

func (r *CachedResolver) key(userID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, userID)
}

func (r *CachedResolver) ActiveUnit(ctx context.Context, userID string) (*models.Unit, error) {
	l := utils.LogCtx(ctx)

	data, err := r.client.Get(ctx, r.key(userID)).Bytes()
	if err == nil {
		var cached cachedUnit
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached.Unit, nil
		}
		l.Warn().Str("user_id", userID).Msg("discarding unreadable duty cache entry")
	} else if !errors.Is(err, redis.Nil) {
		l.Warn().Err(err).Msg("duty cache get failed")
	}

	unit, err := r.inner.ActiveUnit(ctx, userID)
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(cachedUnit{Unit: unit})
	if err != nil {
		return unit, nil
	}
	if err := r.client.Set(ctx, r.key(userID), data, r.ttl).Err(); err != nil {
		l.Warn().Err(err).Msg("duty cache set failed")
	}
	return unit, nil
}

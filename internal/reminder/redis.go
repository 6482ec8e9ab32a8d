package reminder

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

const redisKey = "massage:reminders"

// RedisQueue keeps jobs in a sorted set scored by fire time, so they survive
// restarts. Members are the job keys; a poller claims due members with ZREM.
type RedisQueue struct {
	client   *redis.Client
	handler  Handler
	interval time.Duration
}

func NewRedisQueue(client *redis.Client, h Handler, interval time.Duration) *RedisQueue {
	if interval <= 0 {
		interval = time.Second
	}
	return &RedisQueue{client: client, handler: h, interval: interval}
}

func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (q *RedisQueue) Durable() bool { return true }

// Enqueue uses ZADD, which overwrites the score of an existing member.
func (q *RedisQueue) Enqueue(ctx context.Context, key string, _ uint, fireAt time.Time) error {
	return q.client.ZAdd(ctx, redisKey, &redis.Z{
		Score:  float64(fireAt.UnixMilli()),
		Member: key,
	}).Err()
}

func (q *RedisQueue) Cancel(ctx context.Context, key string) error {
	return q.client.ZRem(ctx, redisKey, key).Err()
}

// Run polls until ctx is canceled.
func (q *RedisQueue) Run(ctx context.Context) {
	ticker := time.NewTicker(q.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := q.Poll(ctx, now); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("reminder poll failed")
			}
		}
	}
}

// Poll runs every job due at now and returns how many it ran.
func (q *RedisQueue) Poll(ctx context.Context, now time.Time) (int, error) {
	due, err := q.client.ZRangeByScore(ctx, redisKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.UnixMilli(), 10),
	}).Result()
	if err != nil {
		return 0, err
	}

	ran := 0
	for _, member := range due {
		// another poller may have claimed it
		removed, err := q.client.ZRem(ctx, redisKey, member).Result()
		if err != nil {
			return ran, err
		}
		if removed == 0 {
			continue
		}

		id, err := appointmentIDFromKey(member)
		if err != nil {
			log.Warn().Str("member", member).Msg("skipping malformed reminder job")
			continue
		}

		if err := q.handler(ctx, id); err != nil {
			log.Error().Err(err).Str("key", member).Msg("reminder job failed")
		}
		ran++
	}
	return ran, nil
}

func appointmentIDFromKey(key string) (uint, error) {
	raw := strings.TrimPrefix(key, keyPrefix)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

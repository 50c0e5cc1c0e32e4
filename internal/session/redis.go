package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps save slots in Redis hashes, one hash per session, with
// a TTL refreshed on every write.
type RedisStore struct {
	client *redis.Client
	log    *slog.Logger
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to addr. The TTL bounds how long an idle
// session's saves survive; zero means forever.
func NewRedisStore(addr string, ttl time.Duration, log *slog.Logger) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		log:    log,
		ttl:    ttl,
	}
}

// Ping verifies the connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

func key(sessionID string) string {
	return "netherhall:saves:" + sessionID
}

func (r *RedisStore) Put(ctx context.Context, sessionID, slot string, blob []byte) error {
	k := key(sessionID)
	if err := r.client.HSet(ctx, k, slot, blob).Err(); err != nil {
		r.log.Error("save write failed", "session_id", sessionID, "slot", slot, "error", err)
		return fmt.Errorf("writing save slot %q: %w", slot, err)
	}
	if r.ttl > 0 {
		if err := r.client.Expire(ctx, k, r.ttl).Err(); err != nil {
			r.log.Warn("failed to refresh save TTL", "session_id", sessionID, "error", err)
		}
	}
	r.log.Debug("save written", "session_id", sessionID, "slot", slot, "bytes", len(blob))
	return nil
}

func (r *RedisStore) Get(ctx context.Context, sessionID, slot string) ([]byte, error) {
	blob, err := r.client.HGet(ctx, key(sessionID), slot).Bytes()
	if err == redis.Nil {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading save slot %q: %w", slot, err)
	}
	return blob, nil
}

func (r *RedisStore) List(ctx context.Context, sessionID string) ([]string, error) {
	slots, err := r.client.HKeys(ctx, key(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("listing save slots: %w", err)
	}
	return slots, nil
}

func (r *RedisStore) Close() error {
	if err := r.client.Close(); err != nil {
		r.log.Error("failed to close redis connection", "error", err)
		return err
	}
	return nil
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrDisabled is returned when the store has no Redis client configured
var ErrDisabled = errors.New("redis mirror disabled")

// Store mirrors saved configurations and keeps jump usage counters in Redis.
// Redis is never the source of truth: the config file is. A nil client
// turns every operation into ErrDisabled.
type Store struct {
	client *redis.Client
	keys   Keys
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client, prefix string) *Store {
	return &Store{
		client: client,
		keys:   NewKeys(prefix),
	}
}

// Enabled reports whether a client is configured
func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

// Ping checks the connection
func (s *Store) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	return s.client.Ping(ctx).Err()
}

// PublishConfig stores the canonical configuration text, the save time and
// bumps the save counter in a single transaction.
func (s *Store) PublishConfig(ctx context.Context, canonical []byte, savedAt time.Time) error {
	if !s.Enabled() {
		return ErrDisabled
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.keys.Config(), canonical, 0)
		pipe.Set(ctx, s.keys.ConfigSavedAt(), savedAt.UTC().Format(time.RFC3339), 0)
		pipe.Incr(ctx, s.keys.SaveCount())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish config: %w", err)
	}
	return nil
}

// MirroredConfig returns the last published canonical configuration.
// A missing key yields (nil, nil).
func (s *Store) MirroredConfig(ctx context.Context) ([]byte, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}

	data, err := s.client.Get(ctx, s.keys.Config()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get mirrored config: %w", err)
	}
	return data, nil
}

// MirrorStatus describes what the mirror currently holds
type MirrorStatus struct {
	SavedAt time.Time // zero when nothing was published yet
	Saves   int64
}

// Status returns the last save time and the number of mirrored saves
func (s *Store) Status(ctx context.Context) (MirrorStatus, error) {
	if !s.Enabled() {
		return MirrorStatus{}, ErrDisabled
	}

	values, err := s.client.MGet(ctx, s.keys.ConfigSavedAt(), s.keys.SaveCount()).Result()
	if err != nil {
		return MirrorStatus{}, fmt.Errorf("failed to get mirror status: %w", err)
	}

	var status MirrorStatus
	if raw, ok := values[0].(string); ok {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			status.SavedAt = t
		}
	}
	if raw, ok := values[1].(string); ok {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			status.Saves = n
		}
	}
	return status, nil
}

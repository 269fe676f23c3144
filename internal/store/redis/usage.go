package redis

import (
	"context"
	"fmt"
	"strconv"
)

// IncrementUsage increments the jump counter for a link
func (s *Store) IncrementUsage(ctx context.Context, linkID string) error {
	if !s.Enabled() {
		return ErrDisabled
	}
	if err := s.client.HIncrBy(ctx, s.keys.Usage(), linkID, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}
	return nil
}

// GetUsageStats retrieves jump counters for all links
func (s *Store) GetUsageStats(ctx context.Context) (map[string]int64, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}

	raw, err := s.client.HGetAll(ctx, s.keys.Usage()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}

	stats := make(map[string]int64, len(raw))
	for id, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			// Skip counters that are not integers
			continue
		}
		stats[id] = n
	}

	return stats, nil
}

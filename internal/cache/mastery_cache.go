package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"studypulse/internal/model"
)

// MasteryCache handles Redis ZSET operations for per-subject mastery
// leaderboards shown on tutor dashboards.
type MasteryCache interface {
	UpdateRating(ctx context.Context, subject, studentID string, rating int) error
	GetTop(ctx context.Context, subject string, limit int) ([]model.MasteryEntry, error)
	GetRank(ctx context.Context, subject, studentID string) (int64, error)
}

type masteryCache struct {
	client *redis.Client
}

// NewMasteryCache creates a new mastery leaderboard cache
func NewMasteryCache(client *redis.Client) MasteryCache {
	return &masteryCache{
		client: client,
	}
}

func (c *masteryCache) key(subject string) string {
	return fmt.Sprintf("subject:%s:mastery", subject)
}

func (c *masteryCache) UpdateRating(ctx context.Context, subject, studentID string, rating int) error {
	return c.client.ZAdd(ctx, c.key(subject), redis.Z{
		Score:  float64(rating),
		Member: studentID,
	}).Err()
}

func (c *masteryCache) GetTop(ctx context.Context, subject string, limit int) ([]model.MasteryEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(subject), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.MasteryEntry, len(results))
	for i, z := range results {
		entries[i] = model.MasteryEntry{
			StudentID: z.Member.(string),
			Rating:    int(z.Score),
			Rank:      i + 1,
		}
	}
	return entries, nil
}

func (c *masteryCache) GetRank(ctx context.Context, subject, studentID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, c.key(subject), studentID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}

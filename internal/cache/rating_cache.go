package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RatingCache is a read-through cache of current ratings so the practice
// flow and dashboards avoid a Mongo round trip per request.
type RatingCache interface {
	Get(ctx context.Context, studentID, subject string) (int, bool, error)
	Set(ctx context.Context, studentID, subject string, rating int) error
	GetAll(ctx context.Context, studentID string) (map[string]int, error)
	Invalidate(ctx context.Context, studentID string) error
}

type ratingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRatingCache creates a new rating cache
func NewRatingCache(client *redis.Client) RatingCache {
	return &ratingCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *ratingCache) key(studentID string) string {
	return fmt.Sprintf("student:%s:ratings", studentID)
}

func (c *ratingCache) Get(ctx context.Context, studentID, subject string) (int, bool, error) {
	data, err := c.client.HGet(ctx, c.key(studentID), subject).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	rating, err := strconv.Atoi(data)
	if err != nil {
		return 0, false, err
	}
	return rating, true, nil
}

func (c *ratingCache) Set(ctx context.Context, studentID, subject string, rating int) error {
	key := c.key(studentID)
	if err := c.client.HSet(ctx, key, subject, rating).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, c.ttl).Err()
}

func (c *ratingCache) GetAll(ctx context.Context, studentID string) (map[string]int, error) {
	data, err := c.client.HGetAll(ctx, c.key(studentID)).Result()
	if err != nil {
		return nil, err
	}
	ratings := make(map[string]int)
	for subject, v := range data {
		rating, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		ratings[subject] = rating
	}
	return ratings, nil
}

func (c *ratingCache) Invalidate(ctx context.Context, studentID string) error {
	return c.client.Del(ctx, c.key(studentID)).Err()
}

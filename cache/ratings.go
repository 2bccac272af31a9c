package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const ratingTTL = 5 * time.Minute
const opTimeout = 200 * time.Millisecond

// RatingCache keeps computed title ratings in redis. Purely an
// optimization: every method degrades to a miss or a no-op on redis
// errors, and a nil *RatingCache is a disabled cache.
type RatingCache struct {
	client *redis.Client
}

func NewRatingCache(client *redis.Client) *RatingCache {
	if client == nil {
		return nil
	}
	return &RatingCache{client: client}
}

func ratingKey(titleID uint) string {
	return fmt.Sprintf("title:%d:rating", titleID)
}

// Get returns (nil, false) on miss or disabled cache. A cached "none"
// marker means the title is known to have no reviews.
func (c *RatingCache) Get(titleID uint) (*float64, bool) {
	if c == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val, err := c.client.Get(ctx, ratingKey(titleID)).Result()
	if err != nil {
		return nil, false
	}
	if val == "none" {
		return nil, true
	}

	rating, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, false
	}
	return &rating, true
}

func (c *RatingCache) Set(titleID uint, rating *float64) {
	if c == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	val := "none"
	if rating != nil {
		val = strconv.FormatFloat(*rating, 'f', -1, 64)
	}
	c.client.Set(ctx, ratingKey(titleID), val, ratingTTL)
}

// Invalidate drops the cached rating after any review write.
func (c *RatingCache) Invalidate(titleID uint) {
	if c == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	c.client.Del(ctx, ratingKey(titleID))
}

package config

import (
	"strconv"

	"github.com/redis/go-redis/v9"
)

// InitRedis returns nil when REDIS_ADDR is unset; the rating cache is
// optional and callers treat a nil client as "cache disabled".
func InitRedis() *redis.Client {
	addr := getEnv("REDIS_ADDR", "")
	if addr == "" {
		return nil
	}

	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		db = 0
	}

	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	})
}

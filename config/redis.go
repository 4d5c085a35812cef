package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// ConnectRedis returns nil without error when REDIS_ADDR is unset; the list
// cache then passes every request through to the database.
func ConnectRedis(s Settings) (*redis.Client, error) {
	if s.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, list cache disabled")
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     s.RedisAddr,
		Username: s.RedisUser,
		Password: s.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := rdb.Ping(ctx).Result()
	if err != nil {
		rdb.Close()
		return nil, err
	}
	log.Println("Connected to redis:", res)
	return rdb, nil
}

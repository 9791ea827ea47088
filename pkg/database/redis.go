package database

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/propmitra/propmitra-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// InitRedis connects the search cache. Redis is optional: when REDIS_HOST
// is unset the search path runs straight against postgres.
func InitRedis() (*redis.Client, error) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		return nil, nil
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	db := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			db = iv
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	// The global is only set on a successful ping: a non-nil RDB is the
	// signal that the search cache is usable.
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("error pinging redis: %w", err)
	}

	RDB = client
	logger.L().Info("connected to redis")
	return RDB, nil
}

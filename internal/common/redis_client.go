package common

import (
	"context"
	"fmt"
	"os"
	"time"

	"southern-cross/frms/internal/logging"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient() *redis.Client {
	redisHost := os.Getenv("REDIS_HOST")
	if redisHost == "" {
		redisHost = "localhost"
	}

	redisPort := os.Getenv("REDIS_PORT")
	if redisPort == "" {
		redisPort = "6379"
	}

	redisPassword := os.Getenv("REDIS_PASSWORD")
	// No password by default for local development

	redisDB := 0 // Default DB

	addr := fmt.Sprintf("%s:%s", redisHost, redisPort)
	logging.Info("Initializing Redis client", "addr", addr, "db", redisDB)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     redisPassword,
		DB:           redisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		logging.Warn("Failed to ping Redis", "error", err.Error())
		return client // Still return the client, connection pool will try to reconnect
	}

	logging.Info("Connected to Redis")
	return client

}

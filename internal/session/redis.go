package session

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens a Redis client for the session store. It accepts
// either a host:port address or a redis:// URL. Returns nil when the
// server is unreachable so the caller can fall back to the in-memory
// store.
func ConnectRedis(addr string) *redis.Client {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			log.Printf("Redis connection warning: invalid REDIS_URL %q: %v (falling back to in-memory sessions)", addr, err)
			return nil
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis connection warning: %v (falling back to in-memory sessions)", err)
		return nil
	}

	log.Println("Redis connected successfully")
	return client
}

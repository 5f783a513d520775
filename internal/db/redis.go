package db

import (
	"context"

	"github.com/redis/go-redis/v9"

	"sparsefields/internal/logger"
)

// RDB is nil until InitRedis is called; callers treat nil as "cache off".
var RDB *redis.Client

// InitRedis принимает адрес явно (а не через os.Getenv)
func InitRedis(addr string) {
	if addr == "" {
		addr = "localhost:6379"
		logger.Warn("redis_default_addr", nil)
	}

	RDB = redis.NewClient(&redis.Options{
		Addr: addr,
	})
}

func PingRedis(ctx context.Context) error {
	return RDB.Ping(ctx).Err()
}

// CloseRedis closes the client and turns the cache off.
func CloseRedis() error {
	if RDB == nil {
		return nil
	}
	err := RDB.Close()
	RDB = nil
	return err
}

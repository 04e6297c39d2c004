package infra

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// NewRedis crea el cliente go-redis y valida la conexión en el arranque.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// Package cache guarda respuestas del backend en Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "ferreexpress:api:"

// Backend es el subconjunto de comandos de Redis que usa el cache.
type Backend interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Redis implementa api.Cache. Los errores de Redis nunca se propagan: se
// registran y la llamada sigue contra el backend.
type Redis struct {
	rdb Backend
	log zerolog.Logger
}

func New(rdb Backend, log zerolog.Logger) *Redis {
	return &Redis{rdb: rdb, log: log}
}

// Dial abre un cliente Redis a partir de una URL redis:// y verifica la conexión.
func Dial(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("redis get failed")
		return nil, false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.rdb.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("redis set failed")
	}
}

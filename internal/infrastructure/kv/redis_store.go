package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/jhoicas/repuestos-api/internal/domain"
	"github.com/jhoicas/repuestos-api/pkg/config"
	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

// NewRedisClient crea el cliente Redis con pool y timeouts y verifica la conexión.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url o address es obligatorio")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

// RedisStore almacenamiento clave-valor sobre Redis. Las claves llevan el prefijo configurado.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore construye el adaptador. prefix separa instalaciones que comparten Redis.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

// Get decodifica el JSON guardado en key. redis.Nil se traduce a found=false.
func (s *RedisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return true, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Set guarda value en JSON sin expiración.
func (s *RedisStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.client.Set(ctx, s.key(key), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// CreateIfAbsent usa SETNX.
func (s *RedisStore) CreateIfAbsent(ctx context.Context, key string, value any) (bool, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", key, err)
	}
	created, err := s.client.SetNX(ctx, s.key(key), raw, 0).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx %s: %w", key, err)
	}
	return created, nil
}

// Incr usa INCR (atómico entre instancias).
func (s *RedisStore) Incr(ctx context.Context, key string) (int64, error) {
	n, err := s.client.Incr(ctx, s.key(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	return n, nil
}

// Ping verifica la conexión.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

var _ Locker = (*RedisLocker)(nil)

// RedisLocker candados distribuidos con bsm/redislock; sirven cuando varias instancias
// de la API comparten el mismo Redis.
type RedisLocker struct {
	client *redislock.Client
	prefix string
	retry  time.Duration
}

// NewRedisLocker construye el administrador de candados sobre el cliente Redis.
func NewRedisLocker(client redislock.RedisClient, prefix string) *RedisLocker {
	return &RedisLocker{client: redislock.New(client), prefix: prefix, retry: 50 * time.Millisecond}
}

// Obtain reintenta con espera lineal hasta que ttl expire. Si no lo consigue devuelve ErrConflict.
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Releaser, error) {
	full := "lock:" + key
	if l.prefix != "" {
		full = l.prefix + ":" + full
	}
	attempts := int(ttl / l.retry)
	if attempts < 1 {
		attempts = 1
	}
	lock, err := l.client.Obtain(ctx, full, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.retry), attempts),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("candado %s ocupado: %w", key, domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("obtener candado %s: %w", key, err)
	}
	return lock, nil
}

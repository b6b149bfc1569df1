package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

var ErrUnknownStoreType = errors.New("unknown store type")

// Options selects and configures a backend.
type Options struct {
	Type          string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// New opens the repository described by opts. An empty Type means SQLite.
func New(ctx context.Context, opts Options) (Repository, error) {
	switch opts.Type {
	case "", StoreSQLite:
		db, err := OpenSQLite(ctx, opts.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store %s: %w", opts.SQLitePath, err)
		}
		return NewSQLiteRepository(db), nil

	case StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("ping redis %s: %w", opts.RedisAddr, err)
		}
		return NewRedisRepository(client, opts.RedisPrefix), nil

	case StoreMemory:
		return NewMemoryRepository(), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStoreType, opts.Type)
	}
}

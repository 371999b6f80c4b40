package main

import (
	"context"
	"fmt"

	"github.com/KirkDiggler/rpg-sheet/internal/config"
	"github.com/KirkDiggler/rpg-sheet/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-sheet/internal/redis"
	characterrepo "github.com/KirkDiggler/rpg-sheet/internal/repositories/character"
)

// openRepository connects the configured backend. The returned function
// releases it.
func openRepository(ctx context.Context, cfg *config.Config) (characterrepo.Repository, func() error, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		repo, err := characterrepo.NewSQLite(ctx, &characterrepo.SQLiteConfig{
			Path:  cfg.SQLitePath,
			Clock: clock.New(),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		return repo, repo.Close, nil

	case config.StorageRedis:
		client, err := redis.Connect(cfg.RedisAddrs, &redis.Options{
			PoolSize: cfg.RedisPoolSize,
			UseTLS:   cfg.RedisTLS,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis client: %w", err)
		}
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to reach redis at %v: %w", cfg.RedisAddrs, err)
		}

		repo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
		if err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to create redis storage: %w", err)
		}
		return repo, client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

package repository

import (
	"context"
	"database/sql"
	"echocity/config"
	"echocity/schema"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// OpenKeyValueStore connects the backend named by cfg.Store.Backend.
// The returned close function releases the connection and is never nil.
func OpenKeyValueStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (KeyValueStore, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case config.BackendMemory:
		logger.Info("using in-memory store; state is lost on restart")
		return NewMemoryKV(), noop, nil

	case config.BackendMySQL:
		db, err := sql.Open("mysql", cfg.Database.MySQLDSN())
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open database connection: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, noop, fmt.Errorf("failed to ping database: %w", err)
		}
		if err := schema.InitializeKVStore(db, logger); err != nil {
			db.Close()
			return nil, noop, err
		}
		logger.Info("database connection established",
			zap.String("host", cfg.Database.Host),
			zap.String("database", cfg.Database.DBName),
		)
		return NewMySQLKV(db), db.Close, nil

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			rdb.Close()
			return nil, noop, fmt.Errorf("failed to connect redis: %w", err)
		}
		logger.Info("redis connection established",
			zap.String("addr", cfg.Redis.Addr),
			zap.String("key_prefix", cfg.Redis.KeyPrefix),
		)
		return NewRedisKV(rdb, cfg.Redis.KeyPrefix), rdb.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown KV_BACKEND %q (want memory, mysql or redis)", cfg.Store.Backend)
	}
}

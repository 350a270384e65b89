package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"groceries/pkg/config"
	"groceries/pkg/grocery"
	"groceries/pkg/grocery/memory"
	"groceries/pkg/grocery/postgres"
	groceryredis "groceries/pkg/grocery/redis"
)

// openRepository builds the configured backend and returns a close func.
func openRepository(ctx context.Context, cfg *config.Config) (grocery.Repository, func() error, error) {
	switch cfg.Store {
	case config.StorePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("db ping: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("create table: %w", err)
		}
		return postgres.New(db), db.Close, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		repo := groceryredis.New(client, cfg.RedisKey)
		if err := repo.Seed(ctx); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("redis seed: %w", err)
		}
		return repo, client.Close, nil

	default:
		return memory.New(), func() error { return nil }, nil
	}
}

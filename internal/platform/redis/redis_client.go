// Package redis constructs the shared Redis client used by the
// liquidation list cache.
package redis

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient は環境変数REDIS_HOST/REDIS_PORT/REDIS_PASSWORD/REDIS_DBから
// Redisクライアントを生成し、接続を確認します。
// ホストとポートが未設定の場合はローカル開発向けにlocalhost:6379を使います。
func NewRedisClient() (*redis.Client, error) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	addr := host + ":" + port

	// キャッシュ専用DB。未設定または不正値は0にフォールバック
	db, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		db = 0
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", addr, "db", db)
	return rdb, nil
}

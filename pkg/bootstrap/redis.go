package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Goden-Gun/httpcall-lib/pkg/auth"
	"github.com/Goden-Gun/httpcall-lib/pkg/config"
	log "github.com/Goden-Gun/httpcall-lib/pkg/logger"
)

// InitRedis 初始化 Redis 客户端并测试连接
func InitRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.Db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		log.Errorf("redis初始化失败: %v", err)
		return nil, err
	}

	log.Info("redis initialized successfully")
	return client, nil
}

// InitSession 按 cfg.Store 创建会话；redis 存储时返回的 close 函数负责关闭连接
func InitSession(ctx context.Context, cfg config.SessionConfig, redisCfg config.RedisConfig) (*auth.Session, func() error, error) {
	cfg.ApplyDefaults()
	opts := auth.OptionsFromConfig(cfg)
	switch cfg.Store {
	case "memory":
		return auth.NewSession(auth.NewMemoryStore(), opts), noopClose, nil
	case "redis":
		client, err := InitRedis(ctx, redisCfg)
		if err != nil {
			return nil, nil, err
		}
		return auth.NewSession(auth.NewRedisTokenStore(client), opts), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

func noopClose() error { return nil }

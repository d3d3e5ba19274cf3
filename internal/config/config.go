package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config rentledger（HTTP API）配置
type Config struct {
	HTTP struct {
		Addr string
	}
	Upstream UpstreamConfig
	Redis    struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	// 房源快照缓存 TTL（Redis）
	RoomCacheTTL time.Duration
}

// UpstreamConfig 上游租赁后台 API 配置
type UpstreamConfig struct {
	BaseURL string        // 上游 REST API 地址
	Timeout time.Duration // 单次请求超时
}

func Load() *Config {
	// .env 仅用于本地开发，缺失时忽略
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Upstream.BaseURL = getEnv("UPSTREAM_BASE_URL", "http://localhost:9000/api")
	cfg.Upstream.Timeout = time.Duration(parseInt(getEnv("UPSTREAM_TIMEOUT_SECONDS", "30"), 30)) * time.Second

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.RoomCacheTTL = time.Duration(parseInt(getEnv("ROOM_CACHE_TTL_SECONDS", "30"), 30)) * time.Second

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

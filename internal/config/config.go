package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	// 为空时使用进程内缓存
	RedisAddr string
	CacheTTL  time.Duration

	CronSpec string

	FetchTimeout time.Duration
	UserAgent    string
	Dedupe       bool

	LogLevel    string
	LogEncoding string

	BasicAuthUser string
	BasicAuthPass string
}

// Load 先读取 .env（若存在），再读取进程环境变量
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "9000"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		CacheTTL:      getDuration("CACHE_TTL", 10*time.Minute),
		CronSpec:      getEnv("CRON_SPEC", "*/30 * * * *"),
		FetchTimeout:  getDuration("FETCH_TIMEOUT", 10*time.Second),
		UserAgent:     getEnv("USER_AGENT", "HeadlineHubBot/1.0"),
		Dedupe:        getBool("DEDUPE_HEADLINES", false),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogEncoding:   getEnv("LOG_ENCODING", "console"),
		BasicAuthUser: getEnv("APP_BASIC_USER", ""),
		BasicAuthPass: getEnv("APP_BASIC_PASS", ""),
	}

	log.Printf("config loaded: port=%s cron=%s cache_ttl=%s", cfg.AppPort, cfg.CronSpec, cfg.CacheTTL)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

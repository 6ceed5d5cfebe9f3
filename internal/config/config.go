package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port             string
	DemoUserEmail    string
	DemoUserName     string
	DemoBusinessName string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	InsightBaseURL      string
	InsightAPIKey       string
	InsightModel        string
	InsightTimeout      time.Duration
	InsightCacheSeconds int
}

func Load() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	timeoutSec, err := strconv.Atoi(getEnv("INSIGHT_TIMEOUT_SECONDS", "10"))
	if err != nil || timeoutSec < 1 {
		timeoutSec = 10
	}
	cacheTTL, err := strconv.Atoi(getEnv("INSIGHT_CACHE_SECONDS", "60"))
	if err != nil || cacheTTL < 1 {
		cacheTTL = 60
	}

	return Config{
		Port:             getEnv("PORT", "3000"),
		DemoUserEmail:    getEnv("DEMO_USER_EMAIL", "demo@example.com"),
		DemoUserName:     getEnv("DEMO_USER_NAME", "Demo User"),
		DemoBusinessName: getEnv("DEMO_BUSINESS_NAME", "Demo Business"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		InsightBaseURL:      os.Getenv("INSIGHT_BASE_URL"),
		InsightAPIKey:       os.Getenv("INSIGHT_API_KEY"),
		InsightModel:        getEnv("INSIGHT_MODEL", "glm-4"),
		InsightTimeout:      time.Duration(timeoutSec) * time.Second,
		InsightCacheSeconds: cacheTTL,
	}
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config 应用配置
type Config struct {
	Port   string
	DBPath string

	// 远程记录源（可选）
	DatabaseURL      string
	RemoteRecordsURL string
	RemoteRecordsKey string

	// 风险模型
	ModelPath      string
	RetrainOnRead  bool
	SeedSampleData bool

	// 日志
	LogLevel  string
	LogFormat string

	// 限流：每个窗口内每个 IP 的最大请求数，0 表示关闭
	RateLimit  int
	RateWindow time.Duration

	GinMode string
}

// Load 加载配置，.env 文件不存在时只读取环境变量
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:   getEnv("PORT", ":8080"),
		DBPath: getEnv("DB_PATH", "./data/disease.db"),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RemoteRecordsURL: getEnv("REMOTE_RECORDS_URL", ""),
		RemoteRecordsKey: getEnv("REMOTE_RECORDS_KEY", ""),

		ModelPath:      getEnv("MODEL_PATH", "./data/models/risk_model.gob"),
		RetrainOnRead:  getEnvBool("RETRAIN_ON_READ", true),
		SeedSampleData: getEnvBool("SEED_SAMPLE_DATA", false),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		RateLimit:  getEnvInt("RATE_LIMIT", 100),
		RateWindow: getEnvDuration("RATE_WINDOW", time.Minute),

		GinMode: getEnv("GIN_MODE", "release"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "error", err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "error", err)
		return defaultValue
	}
	return boolValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "error", err)
		return defaultValue
	}
	return d
}

// Package config 进程配置，全部来自环境变量。
package config

import (
	"os"
	"strconv"
	"time"
)

// Config 服务配置
type Config struct {
	Port         string
	AllowOrigins []string

	// Tushare
	TushareToken string

	// 大模型（火山方舟）
	ArkAPIKey        string
	ArkModelEndpoint string
	ArkBaseURL       string

	// 缓存与持久化
	RedisAddr   string
	HistoryPath string

	// 日志
	LogLevel  string
	LogFormat string // console / json

	// 定时任务
	RefreshEnabled  bool
	RefreshSchedule string // cron表达式

	// 自定义节假日配置文件，可为空
	HolidayConfigPath string
}

// Load 读取环境变量，缺省值与原部署保持一致
func Load() *Config {
	return &Config{
		Port:         getEnvString("PORT", "8080"),
		AllowOrigins: []string{"http://localhost:5173", "http://localhost:3000"},

		TushareToken: os.Getenv("TUSHARE_TOKEN"),

		ArkAPIKey:        os.Getenv("ARK_API_KEY"),
		ArkModelEndpoint: os.Getenv("ARK_MODEL_ENDPOINT"),
		ArkBaseURL:       os.Getenv("ARK_API_URL"),

		RedisAddr:   os.Getenv("REDIS_ADDR"),
		HistoryPath: getEnvString("HISTORY_DB_PATH", "analysis_history.db"),

		LogLevel:  getEnvString("LOG_LEVEL", "info"),
		LogFormat: getEnvString("LOG_FORMAT", "console"),

		RefreshEnabled:  getEnvBool("STOCK_LIST_REFRESH_ENABLED", true),
		RefreshSchedule: getEnvString("STOCK_LIST_REFRESH_SCHEDULE", "0 17 * * 1-5"),

		HolidayConfigPath: os.Getenv("HOLIDAY_CONFIG_PATH"),
	}
}

// 辅助函数
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

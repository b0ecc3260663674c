package config

import (
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Port               string
	LogLevel           slog.Level
	HolidayCalendarURL string
	Redis              *RedisConfig
	Schedule           *ScheduleConfig
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:               port,
		LogLevel:           ParseLogLevel(os.Getenv("LOG_LEVEL")),
		HolidayCalendarURL: os.Getenv("HOLIDAY_CALENDAR_URL"),
		Redis:              redisConfig,
		Schedule:           LoadScheduleConfig(),
	}, nil
}

// ParseLogLevel maps a LOG_LEVEL value to a slog level, defaulting to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

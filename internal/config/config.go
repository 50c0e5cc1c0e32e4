// Package config reads engine configuration from the environment, with an
// optional YAML file for the logging block.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the front ends need to start a session.
type Config struct {
	WorldDir    string
	SaveDir     string
	RedisAddr   string
	SessionTTL  time.Duration
	Environment string
	LogLevel    slog.Level
	Logging     LogConfig
}

// LogConfig controls log output destinations and rotation.
type LogConfig struct {
	ConsoleEnabled bool   `yaml:"console_enabled"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

type logFile struct {
	Logging LogConfig `yaml:"logging"`
}

// Load builds a Config from environment variables. NETHERHALL_LOG_CONFIG
// may point at a YAML file refining the logging block.
func Load() *Config {
	cfg := &Config{
		WorldDir:    getEnv("NETHERHALL_WORLD", "games/manor"),
		SaveDir:     getEnv("NETHERHALL_SAVE_DIR", defaultSaveDir()),
		RedisAddr:   os.Getenv("NETHERHALL_REDIS_ADDR"),
		SessionTTL:  getDuration("NETHERHALL_SESSION_TTL", 7*24*time.Hour),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Logging: LogConfig{
			ConsoleEnabled: false,
			FileEnabled:    true,
			FilePath:       "logs/netherhall.log",
			FileMaxSizeMB:  10,
			FileMaxBackups: 5,
			FileMaxAgeDays: 30,
		},
	}

	if path := os.Getenv("NETHERHALL_LOG_CONFIG"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			var lf logFile
			if err := yaml.Unmarshal(data, &lf); err == nil {
				merge(&cfg.Logging, lf.Logging)
			}
		}
	}

	return cfg
}

func merge(dst *LogConfig, src LogConfig) {
	dst.ConsoleEnabled = src.ConsoleEnabled
	dst.FileEnabled = src.FileEnabled
	if src.FilePath != "" {
		dst.FilePath = src.FilePath
	}
	if src.FileMaxSizeMB > 0 {
		dst.FileMaxSizeMB = src.FileMaxSizeMB
	}
	if src.FileMaxBackups > 0 {
		dst.FileMaxBackups = src.FileMaxBackups
	}
	if src.FileMaxAgeDays > 0 {
		dst.FileMaxAgeDays = src.FileMaxAgeDays
	}
}

func defaultSaveDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".netherhall"
	}
	return home + "/.netherhall/saves"
}

func parseLogLevel(level string) slog.Level {
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

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"NETHERHALL_WORLD", "NETHERHALL_SAVE_DIR", "NETHERHALL_REDIS_ADDR",
		"NETHERHALL_SESSION_TTL", "NETHERHALL_LOG_CONFIG", "ENVIRONMENT", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.WorldDir != "games/manor" {
		t.Errorf("WorldDir = %q, want %q", cfg.WorldDir, "games/manor")
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want empty", cfg.RedisAddr)
	}
	if cfg.SessionTTL != 7*24*time.Hour {
		t.Errorf("SessionTTL = %v, want %v", cfg.SessionTTL, 7*24*time.Hour)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, slog.LevelInfo)
	}
	if !cfg.Logging.FileEnabled || cfg.Logging.ConsoleEnabled {
		t.Errorf("default logging sinks = console %v file %v, want file only",
			cfg.Logging.ConsoleEnabled, cfg.Logging.FileEnabled)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("NETHERHALL_WORLD", "games/other")
	t.Setenv("NETHERHALL_REDIS_ADDR", "localhost:6379")
	t.Setenv("NETHERHALL_SESSION_TTL", "30m")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("NETHERHALL_LOG_CONFIG", "")

	cfg := Load()

	if cfg.WorldDir != "games/other" {
		t.Errorf("WorldDir = %q, want %q", cfg.WorldDir, "games/other")
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q, want %q", cfg.RedisAddr, "localhost:6379")
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
}

func TestLoad_TTLPlainSeconds(t *testing.T) {
	t.Setenv("NETHERHALL_SESSION_TTL", "90")
	if got := Load().SessionTTL; got != 90*time.Second {
		t.Errorf("SessionTTL = %v, want 90s", got)
	}
}

func TestLoad_YAMLLoggingOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.yaml")
	data := []byte("logging:\n  console_enabled: true\n  file_enabled: true\n  file_path: /tmp/custom.log\n  file_max_size_mb: 50\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("NETHERHALL_LOG_CONFIG", path)

	cfg := Load()

	if !cfg.Logging.ConsoleEnabled {
		t.Error("ConsoleEnabled not overridden from YAML")
	}
	if cfg.Logging.FilePath != "/tmp/custom.log" {
		t.Errorf("FilePath = %q, want %q", cfg.Logging.FilePath, "/tmp/custom.log")
	}
	if cfg.Logging.FileMaxSizeMB != 50 {
		t.Errorf("FileMaxSizeMB = %d, want 50", cfg.Logging.FileMaxSizeMB)
	}
	// Fields the file leaves at zero keep their defaults.
	if cfg.Logging.FileMaxBackups != 5 {
		t.Errorf("FileMaxBackups = %d, want default 5", cfg.Logging.FileMaxBackups)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"nonsense", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

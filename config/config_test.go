package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"API_BASE_URL", "CACHE_TTL_SECONDS", "STATE_BACKEND", "SCHEDULE_TIMEZONE", "ONGOING_ROUTE", "API_RATE_LIMIT", "LIVE_WATCH_IN_SERVER"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	if cfg.APIBaseURL != defaultAPIBaseURL {
		t.Errorf("Expected default base URL, got %s", cfg.APIBaseURL)
	}
	if cfg.CacheTTL() != 5*time.Minute {
		t.Errorf("Expected 5m cache TTL, got %v", cfg.CacheTTL())
	}
	if cfg.SearchDebounce() != 500*time.Millisecond {
		t.Errorf("Expected 500ms debounce, got %v", cfg.SearchDebounce())
	}
	if cfg.StateBackend != "file" || cfg.OngoingRoute != "list" {
		t.Errorf("Unexpected defaults: backend=%s ongoing=%s", cfg.StateBackend, cfg.OngoingRoute)
	}
	if cfg.APIRateLimit != 5 {
		t.Errorf("Expected rate limit 5, got %v", cfg.APIRateLimit)
	}
	if !cfg.LiveWatchInServer {
		t.Errorf("Expected live watch in server by default")
	}
}

type envIntTestCase struct {
	name     string
	value    string
	expected int
}

func TestGetEnvInt(t *testing.T) {
	testCases := []envIntTestCase{
		{"Valid", "120", 120},
		{"NotANumber", "abc", 42},
		{"Zero", "0", 42},
		{"Negative", "-5", 42},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tc.value)
			if got := getEnvInt("TEST_INT", 42); got != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("MESSAGE_INTERVAL_SECONDS", "30")
	t.Setenv("REMINDER_WINDOW_MINUTES", "15")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("S3_USE_SSL", "true")
	t.Setenv("API_RATE_LIMIT", "2.5")
	t.Setenv("LIVE_WATCH_IN_SERVER", "false")

	cfg := LoadConfig()

	if cfg.CacheTTL() != time.Minute {
		t.Errorf("Expected 1m cache TTL, got %v", cfg.CacheTTL())
	}
	if cfg.MessageInterval() != 30*time.Second {
		t.Errorf("Expected 30s interval, got %v", cfg.MessageInterval())
	}
	if cfg.ReminderWindow() != 15*time.Minute {
		t.Errorf("Expected 15m window, got %v", cfg.ReminderWindow())
	}
	if cfg.RedisDB != 2 || !cfg.S3UseSSL {
		t.Errorf("Expected RedisDB=2 and S3UseSSL, got %d %v", cfg.RedisDB, cfg.S3UseSSL)
	}
	if cfg.APIRateLimit != 2.5 {
		t.Errorf("Expected rate limit 2.5, got %v", cfg.APIRateLimit)
	}
	if cfg.LiveWatchInServer {
		t.Errorf("Expected LIVE_WATCH_IN_SERVER=false to disable the server watcher")
	}
}

func TestLocation(t *testing.T) {
	cfg := &Config{ScheduleTimezone: "Not/AZone"}
	loc := cfg.Location()
	_, offset := time.Date(2025, 1, 1, 0, 0, 0, 0, loc).Zone()
	if offset != 7*60*60 {
		t.Errorf("Expected UTC+7 fallback, got offset %d", offset)
	}

	cfg.ScheduleTimezone = "UTC"
	if cfg.Location() != time.UTC {
		t.Errorf("Expected UTC location")
	}
}

// config/config.go
package config

import (
	"fmt"
	"os"
	"time"
)

const defaultAPIBaseURL = "https://www.sankavollerei.com/anime/samehadaku"

type Config struct {
	Env  string
	Port string

	// Upstream API and response cache
	APIBaseURL            string
	CacheTTLSeconds       int
	RequestTimeoutSeconds int
	APIRateLimit          float64
	APIRateBurst          int

	// Schedule and live checks
	ScheduleTimezone       string
	ScheduleFile           string
	MessageIntervalSeconds int
	SearchDebounceMS       int
	OngoingRoute           string
	ReminderWindowMinutes  int
	SchedulerNotify        bool
	LiveWatchInServer      bool

	// Persisted preferences
	StateBackend string
	StateFile    string
	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string
	S3UseSSL     bool
	S3Bucket     string
	S3StateKey   string

	// Cloud Tasks configuration (HTTP mode)
	ProjectID         string
	QueueID           string
	LocationID        string
	UseEmulator       bool
	CloudTasksAddress string
	HandlerAddress    string

	// Redis configuration (worker mode)
	RedisAddress  string
	RedisPassword string
	RedisDB       int

	// Discord
	DiscordBotToken  string
	DiscordChannelID string
}

func LoadConfig() *Config {
	return &Config{
		Env:  os.Getenv("APP_ENV"),
		Port: getEnvOrDefault("PORT", "8080"),

		APIBaseURL:            getEnvOrDefault("API_BASE_URL", defaultAPIBaseURL),
		CacheTTLSeconds:       getEnvInt("CACHE_TTL_SECONDS", 300),
		RequestTimeoutSeconds: getEnvInt("REQUEST_TIMEOUT_SECONDS", 10),
		APIRateLimit: func() float64 {
			if val, ok := os.LookupEnv("API_RATE_LIMIT"); ok {
				var f float64
				_, err := fmt.Sscanf(val, "%g", &f)
				if err == nil && f > 0 {
					return f
				}
				fmt.Printf("Invalid API_RATE_LIMIT value '%s', using default of 5/s\n", val)
			}
			return 5
		}(),
		APIRateBurst: getEnvInt("API_RATE_BURST", 10),

		ScheduleTimezone:       getEnvOrDefault("SCHEDULE_TIMEZONE", "Asia/Jakarta"),
		ScheduleFile:           os.Getenv("SCHEDULE_FILE"),
		MessageIntervalSeconds: getEnvInt("MESSAGE_INTERVAL_SECONDS", 60),
		SearchDebounceMS:       getEnvInt("SEARCH_DEBOUNCE_MS", 500),
		OngoingRoute:           getEnvOrDefault("ONGOING_ROUTE", "list"),
		ReminderWindowMinutes:  getEnvInt("REMINDER_WINDOW_MINUTES", 30),
		SchedulerNotify:        getEnvOrDefault("SCHEDULER_NOTIFY", "true") == "true",
		LiveWatchInServer:      getEnvOrDefault("LIVE_WATCH_IN_SERVER", "true") == "true",

		StateBackend: getEnvOrDefault("STATE_BACKEND", "file"),
		StateFile:    getEnvOrDefault("STATE_FILE", "./data/state.json"),
		S3Endpoint:   getEnvOrDefault("S3_ENDPOINT", "localhost:9000"),
		S3AccessKey:  getEnvOrDefault("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:  getEnvOrDefault("S3_SECRET_KEY", "minioadmin"),
		S3UseSSL:     os.Getenv("S3_USE_SSL") == "true",
		S3Bucket:     getEnvOrDefault("S3_BUCKET", "animeschedule"),
		S3StateKey:   getEnvOrDefault("S3_STATE_KEY", "state.json"),

		// Cloud Tasks (preserved for HTTP mode)
		ProjectID:         os.Getenv("GCP_PROJECT_ID"),
		QueueID:           os.Getenv("CLOUD_TASKS_QUEUE"),
		LocationID:        os.Getenv("GCP_LOCATION"),
		UseEmulator:       os.Getenv("USE_TASKS_EMULATOR") == "true",
		CloudTasksAddress: os.Getenv("CLOUD_TASKS_EMULATOR_HOST"),
		HandlerAddress:    os.Getenv("HANDLER_HOST"),

		// Redis (worker mode)
		RedisAddress:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB: func() int {
			if val, ok := os.LookupEnv("REDIS_DB"); ok {
				var intVal int
				_, err := fmt.Sscanf(val, "%d", &intVal)
				if err == nil && intVal >= 0 {
					return intVal
				}
			}
			return 0
		}(),

		DiscordBotToken:  os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordChannelID: os.Getenv("DISCORD_CHANNEL_ID"),
	}
}

// CacheTTL is the freshness window for cached upstream responses.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}

func (c *Config) MessageInterval() time.Duration {
	return time.Duration(c.MessageIntervalSeconds) * time.Second
}

func (c *Config) ReminderWindow() time.Duration {
	return time.Duration(c.ReminderWindowMinutes) * time.Minute
}

// Location resolves ScheduleTimezone. Upstream air times are WIB, so an
// unknown zone falls back to a fixed UTC+7 offset.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ScheduleTimezone)
	if err != nil || loc == nil {
		fmt.Printf("Unknown SCHEDULE_TIMEZONE '%s', using UTC+7\n", c.ScheduleTimezone)
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		var intVal int
		_, err := fmt.Sscanf(val, "%d", &intVal)
		if err == nil && intVal > 0 {
			return intVal
		}
		fmt.Printf("Invalid %s value '%s', using default of %d\n", key, val, defaultVal)
	}
	return defaultVal
}

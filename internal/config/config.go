package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"
)

type Config struct {
	App     AppConfig
	Store   StoreConfig
	Events  EventsConfig
	Tracing TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	BodyLimitMB        int
}

type StoreConfig struct {
	Driver    string // "memory" or "sqlite"
	SQLiteDSN string
	Verbose   bool
}

type EventsConfig struct {
	Topic    string
	NatsURL  string // empty disables NATS publishing
	RedisURL string // empty disables cross-instance fan-out
}

type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			BodyLimitMB:        getEnvAsInt("BODY_LIMIT_MB", 1),
		},
		Store: StoreConfig{
			Driver:    getEnv("STORE_DRIVER", StoreDriverMemory),
			SQLiteDSN: getEnv("SQLITE_DSN", "file:notes?mode=memory"),
			Verbose:   getEnvAsBool("STORE_VERBOSE", false),
		},
		Events: EventsConfig{
			Topic:    getEnv("EVENTS_TOPIC", "note_events"),
			NatsURL:  getEnv("NATS_URL", ""),
			RedisURL: getEnv("REDIS_URL", ""),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "notes-app"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

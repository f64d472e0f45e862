package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Settings storage backends.
const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

type Config struct {
	// Server
	Port      string
	LogLevel  string
	LogFormat string
	SeedData  bool

	// Per-client request limit, disabled when RateLimit is 0
	RateLimit       int
	RateLimitWindow time.Duration

	// Settings persistence
	SettingsBackend string
	SettingsFile    string
	MongoURI        string
	MongoDB         string

	// Notifications, disabled when MQTTBroker is empty
	MQTTBroker   string
	MQTTClientID string
	MQTTTopic    string
}

// Load reads the configuration from the environment, after loading .env if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		SeedData:        getEnvBool("SEED_DATA", true),
		RateLimit:       getEnvInt("RATE_LIMIT", 300),
		RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		SettingsBackend: getEnv("SETTINGS_BACKEND", BackendFile),
		SettingsFile:    getEnv("SETTINGS_FILE", "settings.json"),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDB:         getEnv("MONGO_DB", "fleet"),
		MQTTBroker:      getEnv("MQTT_BROKER", ""),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "fleet-maintenance"),
		MQTTTopic:       getEnv("MQTT_TOPIC", "fleet/maintenance"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}

package config

import (
	"os"
	"strconv"
	"strings"
)

// Settings is the runtime configuration read from the environment.
type Settings struct {
	Port        string
	GinMode     string
	ServiceName string

	// DBDriver is "mysql" or "postgres"; the DSN itself is resolved by ConnectDatabase.
	DBDriver     string
	DBLogLevel   string
	SeedDatabase bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CorsOrigins  string
	OTLPEndpoint string
}

func Load() Settings {
	return Settings{
		Port:          envOrDefault("PORT", "8080"),
		GinMode:       envOrDefault("GIN_MODE", "release"),
		ServiceName:   envOrDefault("SERVICE_NAME", "campsite-backend"),
		DBDriver:      strings.ToLower(envOrDefault("DB_DRIVER", "mysql")),
		DBLogLevel:    strings.ToLower(envOrDefault("DB_LOG_LEVEL", "warn")),
		SeedDatabase:  envBool("SEED_DATABASE", true),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),
		CorsOrigins:   os.Getenv("CORS_ORIGINS"),
		OTLPEndpoint:  strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")),
	}
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(envOrDefault(key, strconv.FormatBool(def)))
	if err != nil {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(envOrDefault(key, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return v
}

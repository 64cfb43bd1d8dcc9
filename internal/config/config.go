package config

import (
	"os"
	"strconv"
	"time"
)

// Config concentra la configuración del servicio.
// Se lee una vez al arrancar desde env vars y se trata como inmutable.
type Config struct {
	// Server
	Port string

	// Database. Si DBDSN viene vacío, el router cae a repos in-memory (modo dev).
	DBDSN          string
	MigrateOnStart bool

	// Logging
	LogLevel  string
	LogFormat string
	AppName   string

	// Rate limit por usuario (requests por minuto + burst).
	RateLimitPerMinute int
	RateLimitBurst     int

	// Timeouts del *http.Server
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load arma la Config desde env. Todo es opcional: sin DB_DSN el servicio
// levanta igual con almacenamiento en memoria.
func Load() Config {
	return Config{
		Port:               getEnv("PORT", "8080"),
		DBDSN:              os.Getenv("DB_DSN"),
		MigrateOnStart:     getEnvBool("DB_MIGRATE", true),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		AppName:            getEnv("APP_NAME", "dogwalks"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 30),
		ReadTimeout:        getEnvDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:       getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	GinMode         string
	DBDriver        string
	DBDSN           string
	SessionSecret   string
	SessionTTL      time.Duration
	CookieSecure    bool
	MediaRoot       string
	CORSOrigins     []string
	AMQPURL         string
	AdminUsername   string
	AdminPassword   string
	LogLevel        string
	LoginRatePerMin int
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	// .env is optional outside of local development
	_ = godotenv.Load()

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, err
	}
	rate, err := strconv.Atoi(getEnv("LOGIN_RATE_PER_MIN", "20"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:           getEnv("DB_DSN", "restaurant.db"),
		SessionSecret:   getEnv("SESSION_SECRET", "change-me-in-production"),
		SessionTTL:      ttl,
		CookieSecure:    getEnv("COOKIE_SECURE", "false") == "true",
		MediaRoot:       getEnv("MEDIA_ROOT", "media"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "http://127.0.0.1:5500")),
		AMQPURL:         os.Getenv("AMQP_URL"),
		AdminUsername:   os.Getenv("ADMIN_USERNAME"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LoginRatePerMin: rate,
	}, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

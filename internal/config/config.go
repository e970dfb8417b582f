package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the signing secret used when ACCESS_TOKEN is unset.
// Tokens signed with it can be forged by anyone.
const DefaultJWTSecret = "change-me"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	MongoURI        string
	DBName          string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	JWTSecret       string
	StripeSecretKey string
	RoleCacheTTL    time.Duration
	CORSOrigins     []string
	RateLimitRPS    float64
	LogLevel        string
	LogFormat       string
	SwaggerHost     string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "5000"),
		MongoURI:        mongoURI(),
		DBName:          getEnv("DB_NAME", "summerCamp"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       getEnv("ACCESS_TOKEN", DefaultJWTSecret),
		StripeSecretKey: os.Getenv("PAYMENT_SECRET_KEY"),
		RoleCacheTTL:    getEnvDuration("ROLE_CACHE_TTL", time.Minute),
		CORSOrigins:     getEnvList("CORS_ORIGINS", []string{"*"}),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 20),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
	}
}

// mongoURI prefers MONGO_URI, then an Atlas SRV string assembled from
// DB_USER/DB_PASS/DB_CLUSTER, then a local server.
func mongoURI() string {
	if v := os.Getenv("MONGO_URI"); v != "" {
		return v
	}
	user := os.Getenv("DB_USER")
	if user == "" {
		return "mongodb://localhost:27017"
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, os.Getenv("DB_PASS")),
		Host:     getEnv("DB_CLUSTER", "cluster0.mongodb.net"),
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

// DefaultSecret reports whether tokens are signed with DefaultJWTSecret.
func (c *Config) DefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

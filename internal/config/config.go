package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultSessionSecret = "default-secret-key-change-me"

type Config struct {
	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	SessionSecret  string
	GinMode        string
	ServerPort     string
	CORSOrigins    []string
	LogLevel       string
	LogFormat      string
	SentryDSN      string
	OpenAIAPIKey   string
	LoginRateLimit int
}

func Load() *Config {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	return &Config{
		DBDriver:       getEnv("DB_DRIVER", "mysql"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "3306"),
		DBUser:         getEnv("DB_USER", "taskuser"),
		DBPassword:     getEnv("DB_PASSWORD", "taskpassword"),
		DBName:         getEnv("DB_NAME", "project_management"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		SessionSecret:  getEnv("SESSION_SECRET", defaultSessionSecret),
		GinMode:        getEnv("GIN_MODE", "debug"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		CORSOrigins:    getEnvAsList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		SentryDSN:      getEnv("SENTRY_DSN", ""),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		LoginRateLimit: getEnvAsInt("LOGIN_RATE_LIMIT", 10),
	}
}

// Validate reports configuration that cannot be used to start the server.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.IsProduction() && c.SessionSecret == defaultSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be set in release mode")
	}

	if c.LoginRateLimit < 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT cannot be negative")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	TPSAPI    TPSAPIConfig
	Redis     RedisConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
	Lang string // UI language: "sr" or "en"
}

type LogConfig struct {
	Dir     string
	Console bool
}

// TPSAPIConfig points at the remote person/city service.
type TPSAPIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	JWTSecret string // signs an outbound service token when set
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	CityTTL  time.Duration
}

type SessionConfig struct {
	TTL        time.Duration
	SweepCron  string
	CookieName string
}

type RateLimitConfig struct {
	Enabled       bool
	MaxRequests   int
	WindowSeconds int
}

// LoadConfig reads an optional .env file followed by the process environment.
func LoadConfig(envFiles ...string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load(envFiles...)

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "TPS Admin"),
			Port: getEnv("APP_PORT", "3000"),
			Env:  getEnv("APP_ENV", "development"),
			Lang: getEnv("APP_LANG", "sr"),
		},
		Log: LogConfig{
			Dir:     getEnv("LOG_DIR", "logs"),
			Console: getEnvBool("LOG_CONSOLE", true),
		},
		TPSAPI: TPSAPIConfig{
			BaseURL:   getEnv("TPS_API_URL", "http://localhost:8080"),
			Timeout:   time.Duration(getEnvInt("TPS_API_TIMEOUT_SECONDS", 10)) * time.Second,
			JWTSecret: getEnv("TPS_API_JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CityTTL:  time.Duration(getEnvInt("CITY_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Session: SessionConfig{
			TTL:        time.Duration(getEnvInt("SESSION_TTL_MINUTES", 30)) * time.Minute,
			SweepCron:  getEnv("VIEWSTATE_SWEEP_CRON", "*/5 * * * *"),
			CookieName: getEnv("SESSION_COOKIE", "tps_session"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       getEnvBool("RATE_LIMIT_ENABLED", true),
			MaxRequests:   getEnvInt("RATE_LIMIT_MAX", 60),
			WindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Scraper  ScraperConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

type ScraperConfig struct {
	MaxPages             int
	DelayBetweenRequests time.Duration
	RequestTimeout       time.Duration
	MaxRetries           int
	RateLimitPerMinute   int
	RespectRobots        bool
	ProxyURL             string
	UserAgent            string
	FetchDetails         bool
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  time.Duration(getEnvAsInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvAsInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "jobradar"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		},
		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "change-me-in-production-please"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 72),
		},
		Scraper: ScraperConfig{
			MaxPages:             getEnvAsInt("SCRAPER_MAX_PAGES", 5),
			DelayBetweenRequests: time.Duration(getEnvAsInt("SCRAPER_DELAY_MS", 2000)) * time.Millisecond,
			RequestTimeout:       time.Duration(getEnvAsInt("SCRAPER_REQUEST_TIMEOUT", 30)) * time.Second,
			MaxRetries:           getEnvAsInt("SCRAPER_MAX_RETRIES", 3),
			RateLimitPerMinute:   getEnvAsInt("SCRAPER_RATE_LIMIT_PER_MINUTE", 20),
			RespectRobots:        getEnvAsBool("SCRAPER_RESPECT_ROBOTS", true),
			ProxyURL:             getEnv("SCRAPER_PROXY_URL", ""),
			UserAgent:            getEnv("SCRAPER_USER_AGENT", ""),
			FetchDetails:         getEnvAsBool("SCRAPER_FETCH_DETAILS", false),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Database +
		" sslmode=" + c.SSLMode
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

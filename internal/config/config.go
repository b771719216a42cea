package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSessionSecret = "default-secret-very-weak"

var ErrWeakSessionSecret = errors.New("SESSION_SECRET must be set in production")

type Config struct {
	Port          string
	Environment   string
	LogLevel      string
	LogFormat     string
	SessionSecret string
	SessionMaxAge int
	CookieSecure  bool
	Database      Database
	ShutdownGrace time.Duration
}

type Database struct {
	User        string
	Password    string
	Host        string
	Port        string
	Name        string
	MaxConns    int32
	MaxIdleTime time.Duration
}

// DSN returns the pgx connection string.
func (d Database) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable&search_path=public",
	}
	return u.String()
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads an optional .env file and builds the config from the
// environment. The bool result reports whether a .env file was found.
func Load(files ...string) (Config, bool, error) {
	found := godotenv.Load(files...) == nil
	cfg := FromEnv()
	return cfg, found, cfg.Validate()
}

func FromEnv() Config {
	return Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   strings.ToLower(getEnv("APP_ENV", "development")),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		SessionSecret: getEnv("SESSION_SECRET", defaultSessionSecret),
		SessionMaxAge: getEnvInt("SESSION_MAX_AGE", 3600*8), // 8 hours
		CookieSecure:  getEnvBool("COOKIE_SECURE", false),
		ShutdownGrace: getEnvDuration("SHUTDOWN_GRACE", 5*time.Second),
		Database: Database{
			User:        getEnv("DB_USER", "postgres"),
			Password:    os.Getenv("DB_PASSWORD"),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			Name:        getEnv("DB_NAME", "ems"),
			MaxConns:    int32(getEnvInt("DB_MAX_CONNS", 10)),
			MaxIdleTime: getEnvDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
		},
	}
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT cannot be empty")
	}
	if c.IsProduction() && c.SessionSecret == defaultSessionSecret {
		return ErrWeakSessionSecret
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE must be positive, got %d", c.SessionMaxAge)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key))); err == nil {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key))); err == nil {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key))); err == nil {
		return value
	}
	return fallback
}

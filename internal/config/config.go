package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is used by the dashboard when DASHBOARD_API_URL is unset.
const DefaultAPIURL = "http://localhost:8083/api"

// Config holds alert-service configuration loaded from environment.
type Config struct {
	Kafka struct {
		Broker  string
		Topic   string
		GroupID string
	}
	DB struct {
		DSN             string
		ConnectAttempts int
		ConnectDelay    time.Duration
	}
	API struct {
		Port      string
		BasePath  string
		RateLimit int
		RateBurst int
	}
	Logging Logging
}

// Logging configures the rotating log file.
type Logging struct {
	Dir   string
	Level string
}

// Dashboard holds configuration for the dashboard binary.
type Dashboard struct {
	APIURL  string
	Logging Logging
}

// loadEnvFile loads .env if present.
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}
	return nil
}

func loadLogging() Logging {
	l := Logging{
		Dir:   os.Getenv("LOG_DIR"),
		Level: os.Getenv("LOG_LEVEL"),
	}
	if l.Dir == "" {
		l.Dir = "logs"
	}
	if l.Level == "" {
		l.Level = "info"
	}
	return l
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	if err := loadEnvFile(); err != nil {
		return Config{}, err
	}

	var cfg Config

	// Kafka settings
	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")
	cfg.Kafka.GroupID = os.Getenv("KAFKA_GROUP_ID")

	// Database
	cfg.DB.DSN = os.Getenv("DB_DSN")
	if n, err := strconv.Atoi(os.Getenv("DB_CONNECT_ATTEMPTS")); err == nil {
		cfg.DB.ConnectAttempts = n
	}
	if d, err := time.ParseDuration(os.Getenv("DB_CONNECT_DELAY")); err == nil {
		cfg.DB.ConnectDelay = d
	}

	// API settings
	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")
	cfg.API.RateLimit = -1
	if rl, err := strconv.Atoi(os.Getenv("API_RATE_LIMIT")); err == nil {
		cfg.API.RateLimit = rl
	}
	if rb, err := strconv.Atoi(os.Getenv("API_RATE_BURST")); err == nil {
		cfg.API.RateBurst = rb
	}

	cfg.Logging = loadLogging()

	// Validate
	invalid := []string{}
	if cfg.API.RateLimit < -1 {
		invalid = append(invalid, "API_RATE_LIMIT")
	}
	if cfg.API.RateBurst < 0 {
		invalid = append(invalid, "API_RATE_BURST")
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid configurations: %v", invalid)
	}

	// Apply defaults
	if cfg.Kafka.Topic == "" {
		cfg.Kafka.Topic = "fraud-alerts"
	}
	if cfg.Kafka.GroupID == "" {
		cfg.Kafka.GroupID = "alert-service"
	}
	if cfg.DB.ConnectAttempts <= 0 {
		cfg.DB.ConnectAttempts = 5
	}
	if cfg.DB.ConnectDelay <= 0 {
		cfg.DB.ConnectDelay = 2 * time.Second
	}
	if cfg.API.Port == "" {
		cfg.API.Port = ":8083"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api"
	}
	if cfg.API.RateLimit == -1 {
		cfg.API.RateLimit = 50
	}
	if cfg.API.RateBurst == 0 {
		cfg.API.RateBurst = cfg.API.RateLimit
	}

	return cfg, nil
}

// LoadDashboard reads the dashboard settings. The backend base URL is the
// only functional setting; it falls back to DefaultAPIURL.
func LoadDashboard() (Dashboard, error) {
	if err := loadEnvFile(); err != nil {
		return Dashboard{}, err
	}

	cfg := Dashboard{
		APIURL:  os.Getenv("DASHBOARD_API_URL"),
		Logging: loadLogging(),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}
	return cfg, nil
}

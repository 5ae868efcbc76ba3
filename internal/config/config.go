package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds service configuration.
type Config struct {
	DatabaseURL   string
	RedisURL      string
	ServerAddr    string
	JWTSecret     string
	TokenTTL      time.Duration
	QRSweepEvery  time.Duration
	PredictionURL string

	SendGridAPIKey string
	MailFromName   string
	MailFromAddr   string

	AuthRateMax     int64
	AuthRateWindow  time.Duration
	ScanRateMax     int64
	ScanRateWindow  time.Duration
	EligibilityRule string
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		user := getenv("POSTGRES_USER", "campus_hub")
		pass := getenv("POSTGRES_PASSWORD", "campus_hub_pass")
		db := getenv("POSTGRES_DB", "campus_hub")
		host := getenv("POSTGRES_HOST", "localhost")
		port := getenv("POSTGRES_PORT", "5432")
		sslmode := getenv("DATABASE_SSLMODE", "disable")
		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, pass, host, port, db, sslmode)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return &Config{
		DatabaseURL:   dsn,
		RedisURL:      getenv("REDIS_URL", ""),
		ServerAddr:    getenv("SERVER_ADDR", "0.0.0.0:8080"),
		JWTSecret:     secret,
		TokenTTL:      parseDuration(getenv("TOKEN_TTL", "24h"), 24*time.Hour),
		QRSweepEvery:  parseDuration(getenv("QR_SWEEP_INTERVAL", "30s"), 30*time.Second),
		PredictionURL: getenv("PREDICTION_URL", ""),

		SendGridAPIKey: getenv("SENDGRID_API_KEY", ""),
		MailFromName:   getenv("MAIL_FROM_NAME", "Campus Hub"),
		MailFromAddr:   getenv("MAIL_FROM_ADDR", "noreply@campus-hub.local"),

		AuthRateMax:     parseInt64(getenv("AUTH_RATE_MAX", "10"), 10),
		AuthRateWindow:  parseDuration(getenv("AUTH_RATE_WINDOW", "15m"), 15*time.Minute),
		ScanRateMax:     parseInt64(getenv("SCAN_RATE_MAX", "30"), 30),
		ScanRateWindow:  parseDuration(getenv("SCAN_RATE_WINDOW", "1m"), time.Minute),
		EligibilityRule: getenv("ELIGIBILITY_RULE", "percentage >= 75"),
	}, nil
}

func getenv(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func parseDuration(val string, def time.Duration) time.Duration {
	if val == "" {
		return def
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return def
	}
	return d
}

func parseInt64(val string, def int64) int64 {
	if val == "" {
		return def
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return def
	}
	return n
}

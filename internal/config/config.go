package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all environment-sourced settings. It is built once in main
// and injected into the pieces that need it, so tests can run with fake
// credentials instead of mutating process-wide environment state.
type Config struct {
	Port string

	// Database settings. DatabaseURL wins in release mode; the discrete
	// fields are used for local development.
	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DBSSLMode   string
	ReleaseMode bool

	// AppToken gates the client CRUD API, CronSecret gates the sweep trigger.
	// They are deliberately separate credentials.
	AppToken   string
	CronSecret string

	// OneSignal delivery credentials
	OneSignalAppID  string
	OneSignalAPIKey string

	// ReminderLinkURL is attached to every push so tapping it opens the app
	ReminderLinkURL string

	AllowedOrigins []string
}

// Load reads configuration from the environment. Missing delivery or auth
// credentials are not fatal here - the affected endpoints reject requests
// with a misconfiguration error instead, so the rest of the API stays up.
func Load() *Config {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		DBHost:          os.Getenv("DB_HOST"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBPort:          os.Getenv("DB_PORT"),
		DBSSLMode:       getEnv("DB_SSL_MODE", "disable"),
		ReleaseMode:     os.Getenv("GIN_MODE") == "release",
		AppToken:        os.Getenv("APP_TOKEN"),
		CronSecret:      os.Getenv("CRON_SECRET"),
		OneSignalAppID:  os.Getenv("ONESIGNAL_APP_ID"),
		OneSignalAPIKey: os.Getenv("ONESIGNAL_REST_API_KEY"),
		ReminderLinkURL: getEnv("REMINDER_LINK_URL", "https://jheypepocket.com/#reminders"),
	}

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg
}

// DSN builds the Postgres connection string
func (c *Config) DSN() (string, error) {
	if c.ReleaseMode {
		if c.DatabaseURL == "" {
			return "", fmt.Errorf("DATABASE_URL must be set in release mode")
		}
		return c.DatabaseURL, nil
	}

	if c.DBHost == "" || c.DBUser == "" || c.DBName == "" || c.DBPort == "" {
		return "", fmt.Errorf("DB_HOST, DB_USER, DB_NAME and DB_PORT must be set")
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC connect_timeout=10",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode), nil
}

// PushConfigured reports whether OneSignal delivery credentials are present
func (c *Config) PushConfigured() bool {
	return c.OneSignalAppID != "" && c.OneSignalAPIKey != ""
}

// getEnv returns the environment variable value or a default if not set
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

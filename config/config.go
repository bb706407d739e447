// Package config reads the server configuration from the environment.
// Values can come from a .env file; see Load.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/PedroHSSoares-Dev/portfolio/field"
)

type SMTP struct {
	Host     string
	Port     string
	User     string
	Password string
	To       string
}

// Configured reports whether credentials are present.
func (s SMTP) Configured() bool { return s.User != "" && s.Password != "" }

type Admin struct {
	Username string
	Password string
}

type Contact struct {
	Email    string
	WhatsApp string
}

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	DBPath   string

	Field      field.Params
	FieldFPS   int
	MaxClients int

	// VisitorRetention is how long visitor records are kept.
	VisitorRetention time.Duration
	CleanupInterval  time.Duration

	SMTP    SMTP
	Admin   Admin
	Contact Contact
}

// Development reports whether the server runs in gin's debug mode.
func (c *Config) Development() bool { return c.GinMode == "" || c.GinMode == "debug" }

// Load reads the given .env files (missing files are ignored) and then the
// environment. Variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	params, err := field.LoadParams(os.Getenv("FIELD_CONFIG"))
	if err != nil {
		return nil, err
	}

	fps, err := intEnv("FIELD_FPS", 30)
	if err != nil {
		return nil, err
	}
	maxClients, err := intEnv("MAX_STREAM_CLIENTS", 64)
	if err != nil {
		return nil, err
	}
	retentionDays, err := intEnv("VISITOR_RETENTION_DAYS", 365)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:     env("PORT", "8080"),
		GinMode:  os.Getenv("GIN_MODE"),
		LogLevel: env("LOG_LEVEL", "info"),
		DBPath:   env("DB_PATH", "portfolio.db"),

		Field:      params,
		FieldFPS:   fps,
		MaxClients: maxClients,

		VisitorRetention: time.Duration(retentionDays) * 24 * time.Hour,
		CleanupInterval:  24 * time.Hour,

		SMTP: SMTP{
			Host:     env("SMTP_HOST", "smtp.gmail.com"),
			Port:     env("SMTP_PORT", "587"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
			To:       os.Getenv("TO_EMAIL"),
		},
		Admin: Admin{
			Username: os.Getenv("ADMIN_USERNAME"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		Contact: Contact{
			Email:    os.Getenv("CONTACT_EMAIL"),
			WhatsApp: os.Getenv("CONTACT_WHATSAPP"),
		},
	}
	if cfg.SMTP.To == "" {
		cfg.SMTP.To = cfg.Contact.Email
	}
	if cfg.FieldFPS <= 0 || cfg.FieldFPS > 120 {
		return nil, fmt.Errorf("FIELD_FPS %d out of range 1..120", cfg.FieldFPS)
	}
	return cfg, nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

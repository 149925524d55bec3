// Package config reads settings from the environment, an optional .env file
// and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Zachkp/folio/internal/contact"
)

var ErrInvalidLevel = errors.New("config: unknown log level")

type Config struct {
	Port          string
	DBPath        string
	ContentPath   string
	GitHubUser    string
	LogLevel      slog.Level
	FrameInterval time.Duration
	AdminUsername string
	AdminPassword string
	IPSalt        string
	SMTP          contact.SMTPConfig
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_PATH", "folio.db")
	v.SetDefault("CONTENT_PATH", "")
	v.SetDefault("GITHUB_USER", "Zachkp")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FRAME_INTERVAL", "")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("IP_SALT", "")
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASS", "")
	v.SetDefault("TO_EMAIL", "")
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"port":           "PORT",
	"db":             "DB_PATH",
	"content":        "CONTENT_PATH",
	"github-user":    "GITHUB_USER",
	"log-level":      "LOG_LEVEL",
	"frame-interval": "FRAME_INTERVAL",
}

// LoadDotEnv reads .env files into the process environment without
// overriding variables already set. A missing default .env is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// Load resolves the configuration. Flags that were set on fs win over the
// environment; fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()
	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	level, err := ParseLevel(v.GetString("LOG_LEVEL"))
	if err != nil {
		return nil, err
	}
	// zero leaves the frame interval to the content file
	var interval time.Duration
	if raw := v.GetString("FRAME_INTERVAL"); raw != "" {
		interval, err = time.ParseDuration(raw)
		if err != nil || interval < 0 {
			return nil, fmt.Errorf("config: invalid FRAME_INTERVAL %q", raw)
		}
	}

	return &Config{
		Port:          v.GetString("PORT"),
		DBPath:        v.GetString("DB_PATH"),
		ContentPath:   v.GetString("CONTENT_PATH"),
		GitHubUser:    v.GetString("GITHUB_USER"),
		LogLevel:      level,
		FrameInterval: interval,
		AdminUsername: v.GetString("ADMIN_USERNAME"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),
		IPSalt:        v.GetString("IP_SALT"),
		SMTP: contact.SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetString("SMTP_PORT"),
			User:     v.GetString("SMTP_USER"),
			Password: v.GetString("SMTP_PASS"),
			To:       v.GetString("TO_EMAIL"),
		},
	}, nil
}

// DefaultAdmin reports whether the development credentials are in use.
func (c *Config) DefaultAdmin() bool {
	return c.AdminUsername == "admin" && c.AdminPassword == "admin123"
}

func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return l, nil
}

// Logger builds the process logger, writing text to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.LogLevel}))
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Session  SessionConfig  `mapstructure:"session"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// TelegramConfig holds bot transport configuration
type TelegramConfig struct {
	BotToken      string        `mapstructure:"bot_token"`
	AdminUsername string        `mapstructure:"admin_username"` // "@handle" allowed to pull the raw log
	UpdateTimeout int           `mapstructure:"update_timeout"` // long-poll timeout in seconds
	SendRate      float64       `mapstructure:"send_rate"`      // broadcast sends per second
	SendBurst     int           `mapstructure:"send_burst"`
	RetryDelay    time.Duration `mapstructure:"retry_delay"`
}

// StorageConfig holds the file paths for the event log and user registry
type StorageConfig struct {
	LogPath   string `mapstructure:"log_path"`
	UsersPath string `mapstructure:"users_path"`
}

// SessionConfig holds conversation state behavior configuration
type SessionConfig struct {
	// StrictCategories rejects free text that is not a known category and
	// re-prompts instead of logging it with weight 0. Off by default to keep
	// the original "any text ends the prompt" behavior.
	StrictCategories bool `mapstructure:"strict_categories"`
}

// ReminderConfig holds the daily reminder broadcast configuration
type ReminderConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
	Message  string        `mapstructure:"message"`
}

// ServerConfig holds the liveness/metrics HTTP endpoint configuration
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	setDefaults(v)

	// Enable environment variable override (e.g. HABITHACK_TELEGRAM_BOT_TOKEN)
	v.SetEnvPrefix("HABITHACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Telegram defaults. The empty-string defaults register the keys with
	// viper so an env-only override is still seen by Unmarshal.
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.admin_username", "")
	v.SetDefault("telegram.update_timeout", 60)
	v.SetDefault("telegram.send_rate", 25.0)
	v.SetDefault("telegram.send_burst", 5)
	v.SetDefault("telegram.retry_delay", "1s")

	// Storage defaults
	v.SetDefault("storage.log_path", "./data/logs.csv")
	v.SetDefault("storage.users_path", "./data/users.txt")

	// Session defaults
	v.SetDefault("session.strict_categories", false)

	// Reminder defaults
	v.SetDefault("reminder.enabled", true)
	v.SetDefault("reminder.interval", "24h")
	v.SetDefault("reminder.message", "📅 Don’t forget to log your spending today in HabitHack!")

	// Server defaults
	v.SetDefault("server.addr", ":8080")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate Telegram config
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.UpdateTimeout < 1 {
		return fmt.Errorf("telegram.update_timeout must be at least 1 second")
	}
	if c.Telegram.SendRate <= 0 {
		return fmt.Errorf("telegram.send_rate must be positive")
	}
	if c.Telegram.SendBurst < 1 {
		return fmt.Errorf("telegram.send_burst must be at least 1")
	}

	// Validate Storage config
	if c.Storage.LogPath == "" {
		return fmt.Errorf("storage.log_path is required")
	}
	if c.Storage.UsersPath == "" {
		return fmt.Errorf("storage.users_path is required")
	}

	// Validate Reminder config
	if c.Reminder.Enabled {
		if c.Reminder.Interval < 1*time.Minute {
			return fmt.Errorf("reminder.interval must be at least 1 minute")
		}
		if c.Reminder.Message == "" {
			return fmt.Errorf("reminder.message is required when reminder is enabled")
		}
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

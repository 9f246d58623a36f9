package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrNoToken = errors.New("TOKEN is not set")

type Config struct {
	Token    string `mapstructure:"TOKEN"`
	BotDebug bool   `mapstructure:"BOT_DEBUG"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Optional user directory. Without it the built-in one is used.
	DBConnectionString string `mapstructure:"DB_CONNECTION_STRING"`

	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`
}

var keys = []string{
	"TOKEN", "BOT_DEBUG", "LOG_LEVEL",
	"DB_CONNECTION_STRING",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL",
}

// Load reads the environment, after a .env file if there is one.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", k, err)
		}
	}
	v.SetDefault("LOG_LEVEL", "debug")
	v.SetDefault("CACHE_TTL", 10*time.Minute)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.Token == "" {
		return nil, ErrNoToken
	}
	return &cfg, nil
}

func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelDebug
}

func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	if c.Token != "" {
		sb.WriteString("  Token: ********\n")
	} else {
		sb.WriteString("  Token: (empty)\n")
	}
	sb.WriteString(fmt.Sprintf("  BotDebug: %v\n", c.BotDebug))
	sb.WriteString(fmt.Sprintf("  LogLevel: %s\n", c.LogLevel))
	if c.DBConnectionString != "" {
		sb.WriteString("  DBConnectionString: ********\n")
	} else {
		sb.WriteString("  DBConnectionString: (empty)\n")
	}
	sb.WriteString(fmt.Sprintf("  RedisAddr: %s\n", c.RedisAddr))
	sb.WriteString(fmt.Sprintf("  RedisDB: %d\n", c.RedisDB))
	sb.WriteString(fmt.Sprintf("  CacheTTL: %s\n", c.CacheTTL))
	return sb.String()
}

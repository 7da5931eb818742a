// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       logrus.Level
	Seed           uint64 // 0 means time-based

	HostPasswordHash string // empty disables the HTTP host endpoints
	JWTSecret        string
	HostTokenTTL     time.Duration

	RedisAddr     string // empty disables presence tracking
	RedisPassword string
	RedisDB       int
	PresenceTTL   time.Duration
}

// HostEnabled reports whether the HTTP host endpoints should be mounted.
func (c Config) HostEnabled() bool { return c.HostPasswordHash != "" }

// Load reads a .env file if one exists, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment alone.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "3001"),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "localhost:3000")),
		HostPasswordHash: os.Getenv("HOST_PASSWORD_HASH"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
	}

	var err error
	if cfg.LogLevel, err = logrus.ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if s := os.Getenv("GAME_SEED"); s != "" {
		if cfg.Seed, err = strconv.ParseUint(s, 10, 64); err != nil {
			return Config{}, fmt.Errorf("GAME_SEED: %w", err)
		}
	}
	if cfg.HostTokenTTL, err = parseDuration("HOST_TOKEN_TTL", "12h"); err != nil {
		return Config{}, err
	}
	if cfg.PresenceTTL, err = parseDuration("PRESENCE_TTL", "60s"); err != nil {
		return Config{}, err
	}
	if s := os.Getenv("REDIS_DB"); s != "" {
		if cfg.RedisDB, err = strconv.Atoi(s); err != nil {
			return Config{}, fmt.Errorf("REDIS_DB: %w", err)
		}
	}
	if cfg.HostEnabled() && cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required when HOST_PASSWORD_HASH is set")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, def))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s: must be positive, got %s", key, d)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

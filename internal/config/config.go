package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// HTTP server
	ListenAddr string        `yaml:"listen_addr"` // e.g. ":8080"
	TaskDelay  time.Duration `yaml:"task_delay"`  // simulated I/O delay for GET /task

	// Ranking
	TopK         int `yaml:"top_k"`         // results per ranked response
	RecentWindow int `yaml:"recent_window"` // candidate window for create-and-fetch (created_at DESC)
	TopWindow    int `yaml:"top_window"`    // candidate window for top-posts (store order)

	// Creation workflow. False keeps the two-statement user_id allocation,
	// duplicates possible under concurrent creates; true uses the store's
	// single read-max-and-insert statement.
	AtomicUserIDs bool `yaml:"atomic_user_ids"`

	// Postgres (explicit pieces)
	PGHost     string `yaml:"pg_host"`
	PGPort     int    `yaml:"pg_port"`
	PGUser     string `yaml:"pg_user"`
	PGPassword string `yaml:"pg_password"`
	PGDatabase string `yaml:"pg_database"`
	PGSSLMode  string `yaml:"pg_sslmode"`
	PGMaxConns int32  `yaml:"pg_max_conns"`
}

// BuildDSN composes a keyword/value DSN compatible with pgxpool.
func (c Config) BuildDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PGHost, c.PGPort, c.PGUser, c.PGPassword, c.PGDatabase, c.PGSSLMode,
	)
}

func defaults() Config {
	return Config{
		ListenAddr:    ":8080",
		TaskDelay:     time.Second,
		TopK:          10,
		RecentWindow:  25000,
		TopWindow:     200,
		AtomicUserIDs: false,
		PGHost:        "localhost",
		PGPort:        5432,
		PGUser:        "app",
		PGPassword:    "app",
		PGDatabase:    "feedrank",
		PGSSLMode:     "disable",
		PGMaxConns:    50,
	}
}

// Load resolves configuration in precedence order: defaults, then the YAML
// file named by FEED_CONFIG_FILE (if set), then environment variables.
func Load() (Config, error) {
	c := defaults()
	if path := os.Getenv("FEED_CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return c, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return c, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	c.applyEnv()
	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	c.ListenAddr = getenv("FEED_LISTEN_ADDR", c.ListenAddr)
	if d, err := time.ParseDuration(os.Getenv("FEED_TASK_DELAY")); err == nil {
		c.TaskDelay = d
	}
	c.TopK = getenvi("FEED_TOP_K", c.TopK)
	c.RecentWindow = getenvi("FEED_RECENT_WINDOW", c.RecentWindow)
	c.TopWindow = getenvi("FEED_TOP_WINDOW", c.TopWindow)
	if v := os.Getenv("FEED_ATOMIC_USER_IDS"); v != "" {
		c.AtomicUserIDs = v == "1" || v == "true"
	}

	c.PGHost = getenv("PG_HOST", c.PGHost)
	c.PGPort = getenvi("PG_PORT", c.PGPort)
	c.PGUser = getenv("PG_USER", c.PGUser)
	c.PGPassword = getenv("PG_PASSWORD", c.PGPassword)
	c.PGDatabase = getenv("PG_DATABASE", c.PGDatabase)
	c.PGSSLMode = getenv("PG_SSLMODE", c.PGSSLMode)
	c.PGMaxConns = int32(getenvi("PG_MAX_CONNS", int(c.PGMaxConns)))
}

func (c Config) validate() error {
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.RecentWindow <= 0 || c.TopWindow <= 0 {
		return fmt.Errorf("candidate windows must be positive, got recent=%d top=%d",
			c.RecentWindow, c.TopWindow)
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		var iv int
		_, err := fmt.Sscanf(v, "%d", &iv)
		if err == nil {
			return iv
		}
	}
	return def
}

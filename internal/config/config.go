// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection (audit store; optional in development)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible in-flight guard)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// Gallery repository and PR API
	GitHubToken string
	RepoOwner   string
	RepoName    string
	RepoURL     string // clone URL; derived from owner/name when unset
	BaseBranch  string
	DataDir     string

	// Bot identity used for commits and pushes
	BotName     string
	BotEmail    string
	BotUsername string

	// Shallow clone depth for submission workspaces
	CloneDepth int

	// bcrypt hash of the submit API key; empty disables the key check
	SubmitKeyHash string
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "themegate"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "themegate"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		GitHubToken: os.Getenv("GITHUB_TOKEN"),
		RepoOwner:   envOrDefault("THEME_REPO_OWNER", "themegate"),
		RepoName:    envOrDefault("THEME_REPO_NAME", "gallery"),
		RepoURL:     os.Getenv("THEME_REPO_URL"),
		BaseBranch:  envOrDefault("THEME_BASE_BRANCH", "main"),
		DataDir:     envOrDefault("THEME_DATA_DIR", "src/data/themes"),

		BotName:     envOrDefault("BOT_NAME", "Theme Gate Bot"),
		BotEmail:    envOrDefault("BOT_EMAIL", "bot@themegate.dev"),
		BotUsername: envOrDefault("BOT_USERNAME", "themegate-bot"),

		CloneDepth: 1,

		SubmitKeyHash: os.Getenv("SUBMIT_API_KEY_HASH"),
	}

	if v := os.Getenv("THEME_CLONE_DEPTH"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil || depth < 0 {
			return nil, fmt.Errorf("THEME_CLONE_DEPTH must be a non-negative integer, got %q", v)
		}
		cfg.CloneDepth = depth
	}

	if cfg.RepoURL == "" {
		cfg.RepoURL = fmt.Sprintf("https://github.com/%s/%s.git", cfg.RepoOwner, cfg.RepoName)
	}

	if cfg.Env == "production" {
		if cfg.GitHubToken == "" {
			return nil, fmt.Errorf("GITHUB_TOKEN must be set in production")
		}
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

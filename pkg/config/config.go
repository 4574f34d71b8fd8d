// Package config resolves the movies settings from defaults, an optional
// TOML file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	toml "github.com/pelletier/go-toml/v2"
)

// ErrMissingAPIKey is returned by Validate when no bearer token is set.
var ErrMissingAPIKey = errors.New("TMDB_API_KEY is not set")

type Config struct {
	APIBaseURL   string
	ImageBaseURL string
	APIKey       string
	DBPath       string
	LogFile      string
	Timeout      time.Duration
}

const (
	defaultConfigPath   = "~/.config/movies/config.toml"
	defaultAPIBaseURL   = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	defaultDBPath       = "~/.movies/movies.db"
	defaultLogFile      = "~/.movies/movies.log"
	defaultTimeout      = 10 * time.Second
)

type fileConfig struct {
	APIBaseURL     string `toml:"api_base_url"`
	ImageBaseURL   string `toml:"image_base_url"`
	DBPath         string `toml:"db_path"`
	LogFile        string `toml:"log_file"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type envConfig struct {
	APIKey       string `envconfig:"TMDB_API_KEY"`
	ViteAPIKey   string `envconfig:"VITE_TMDB_API_KEY"`
	APIBaseURL   string `envconfig:"MOVIES_API_BASE_URL"`
	ImageBaseURL string `envconfig:"MOVIES_IMAGE_BASE_URL"`
	DBPath       string `envconfig:"MOVIES_DB_PATH"`
	LogFile      string `envconfig:"MOVIES_LOG_FILE"`
}

// Default returns the built-in configuration with paths expanded.
func Default() Config {
	return Config{
		APIBaseURL:   defaultAPIBaseURL,
		ImageBaseURL: defaultImageBaseURL,
		DBPath:       mustExpand(defaultDBPath),
		LogFile:      mustExpand(defaultLogFile),
		Timeout:      defaultTimeout,
	}
}

// Load builds the configuration. A missing config file is not an error.
// The API key is read once here and never reloaded.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	if err := applyFile(&cfg, resolved); err != nil {
		return Config{}, err
	}

	// load .env from the working directory, ignore the error
	_ = godotenv.Load()

	var env envConfig
	if err := envconfig.Process("", &env); err != nil {
		return Config{}, fmt.Errorf("load env config: %w", err)
	}
	applyEnv(&cfg, env)

	return cfg, nil
}

// Validate reports settings the catalog client cannot work without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("api base url is empty")
	}
	return nil
}

func applyFile(cfg *Config, path string) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	var raw fileConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIBaseURL); v != "" {
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(raw.ImageBaseURL); v != "" {
		cfg.ImageBaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(raw.DBPath); v != "" {
		cfg.DBPath = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	return nil
}

func applyEnv(cfg *Config, env envConfig) {
	cfg.APIKey = strings.TrimSpace(env.APIKey)
	if cfg.APIKey == "" {
		cfg.APIKey = strings.TrimSpace(env.ViteAPIKey)
	}
	if v := strings.TrimSpace(env.APIBaseURL); v != "" {
		cfg.APIBaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(env.ImageBaseURL); v != "" {
		cfg.ImageBaseURL = strings.TrimRight(v, "/")
	}
	if v := strings.TrimSpace(env.DBPath); v != "" {
		cfg.DBPath = mustExpand(v)
	}
	if v := strings.TrimSpace(env.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

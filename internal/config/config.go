package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	CORSOrigins  []string      `yaml:"cors_origins"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// StatsAPIConfig holds upstream client configuration
type StatsAPIConfig struct {
	BaseURL          string        `yaml:"base_url"`
	Timeout          time.Duration `yaml:"timeout"`
	RateLimit        float64       `yaml:"rate_limit"`
	Burst            int           `yaml:"burst"`
	Season           int           `yaml:"season"`
	GameType         string        `yaml:"game_type"`
	FetchConcurrency int           `yaml:"fetch_concurrency"`
}

// RedisConfig holds Redis connection configuration. An empty URL
// disables result publishing.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// ScoringConfig holds the per-player probability defaults
type ScoringConfig struct {
	OpponentStrikeoutRate float64 `yaml:"opponent_k_rate"`
	ParkFactor            float64 `yaml:"park_factor"`
	AnalyzedGames         int     `yaml:"analyzed_games"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	StatsAPI StatsAPIConfig `yaml:"statsapi"`
	Redis    RedisConfig    `yaml:"redis"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	Log      LogConfig      `yaml:"log"`
}

// Defaults returns the built-in configuration
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			CORSOrigins:  []string{"http://localhost:3000"},
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		StatsAPI: StatsAPIConfig{
			BaseURL:          "https://statsapi.mlb.com/api/v1",
			Timeout:          15 * time.Second,
			RateLimit:        10,
			Burst:            5,
			Season:           time.Now().Year(),
			GameType:         "R",
			FetchConcurrency: 8,
		},
		Scoring: ScoringConfig{
			OpponentStrikeoutRate: 0.22,
			ParkFactor:            1.0,
			AnalyzedGames:         50,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig builds the configuration from defaults, then the YAML file
// named by CONFIG_FILE if set, then environment variables
func LoadConfig() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = getEnv("SERVER_ADDR", cfg.Server.Addr)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.Server.CORSOrigins = splitList(origins)
	}

	cfg.StatsAPI.BaseURL = getEnv("STATSAPI_BASE_URL", cfg.StatsAPI.BaseURL)
	cfg.StatsAPI.Timeout = getEnvDuration("STATSAPI_TIMEOUT", cfg.StatsAPI.Timeout)
	cfg.StatsAPI.RateLimit = getEnvFloat("STATSAPI_RATE_LIMIT", cfg.StatsAPI.RateLimit)
	cfg.StatsAPI.Burst = getEnvInt("STATSAPI_BURST", cfg.StatsAPI.Burst)
	cfg.StatsAPI.Season = getEnvInt("SEASON", cfg.StatsAPI.Season)
	cfg.StatsAPI.GameType = getEnv("GAME_TYPE", cfg.StatsAPI.GameType)
	cfg.StatsAPI.FetchConcurrency = getEnvInt("FETCH_CONCURRENCY", cfg.StatsAPI.FetchConcurrency)

	cfg.Redis.URL = getEnv("REDIS_URL", cfg.Redis.URL)

	cfg.Scoring.OpponentStrikeoutRate = getEnvFloat("OPPONENT_K_RATE", cfg.Scoring.OpponentStrikeoutRate)
	cfg.Scoring.ParkFactor = getEnvFloat("PARK_FACTOR", cfg.Scoring.ParkFactor)
	cfg.Scoring.AnalyzedGames = getEnvInt("ANALYZED_GAMES", cfg.Scoring.AnalyzedGames)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
}

// Validate rejects settings the service cannot run with
func (c *Config) Validate() error {
	if c.StatsAPI.BaseURL == "" {
		return fmt.Errorf("statsapi base url is required")
	}
	if c.StatsAPI.RateLimit <= 0 || c.StatsAPI.Burst <= 0 {
		return fmt.Errorf("statsapi rate limit and burst must be positive")
	}
	if c.StatsAPI.FetchConcurrency <= 0 {
		return fmt.Errorf("fetch concurrency must be positive, got %d", c.StatsAPI.FetchConcurrency)
	}
	if c.Scoring.AnalyzedGames <= 0 {
		return fmt.Errorf("analyzed games must be positive, got %d", c.Scoring.AnalyzedGames)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
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

// Package config loads service configuration from a YAML file with
// environment variable overrides. A .env file is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultServerAddress       = ":8090"
	defaultReadTimeout         = 10 * time.Second
	defaultWriteTimeout        = 60 * time.Second
	defaultGenerationTimeout   = 90 * time.Second
	defaultFetchTimeout        = 15 * time.Second
	defaultCacheTTL            = time.Hour
	defaultRequestsPerMinute   = 30
	defaultModel               = "claude-sonnet-4-20250514"
	defaultMaxTokens           = 2048
	defaultLinkWordThreshold   = 8
	defaultMinBriefWords       = 10
	defaultUploadTextCap       = 5000
	defaultMaxUploadSizeBytes  = 10 << 20
)

type Config struct {
	Debug      bool             `yaml:"debug"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Auth       AuthConfig       `yaml:"auth"`
	Generation GenerationConfig `yaml:"generation"`
	Classify   ClassifyConfig   `yaml:"classify"`
}

type ServerConfig struct {
	Address      string        `yaml:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// GenerationConfig controls the outbound text-generation calls.
type GenerationConfig struct {
	APIKey            string        `yaml:"api_key"`
	Model             string        `yaml:"model"`
	MaxTokens         int           `yaml:"max_tokens"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	FetchTimeout      time.Duration `yaml:"fetch_timeout"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
}

// ClassifyConfig holds the input-classification thresholds. The taxonomy in
// the product has shifted before, so these are configuration rather than
// compile-time constants.
type ClassifyConfig struct {
	// LinkWordThreshold is the number of non-URL words at or above which an
	// input with a URL counts as a brief with link rather than link only.
	LinkWordThreshold int `yaml:"link_word_threshold"`
	// MinBriefWords is the minimum word count for a brief with no URL.
	MinBriefWords int `yaml:"min_brief_words"`
	// UploadTextCap is the maximum number of characters of extracted file
	// text passed to generation.
	UploadTextCap int `yaml:"upload_text_cap"`
	// MaxUploadSizeBytes is the largest accepted upload.
	MaxUploadSizeBytes int64 `yaml:"max_upload_size_bytes"`
}

// Load reads the YAML config at path, loads .env files, applies environment
// overrides, sets defaults, and validates.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	setDefaults(&cfg)
	overrideWithEnvVars(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// loadEnvFiles loads .env.local then .env when present. Missing files are fine.
func loadEnvFiles() {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		_ = godotenv.Load(envFile)
		return
	}
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
}

func setDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = defaultServerAddress
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = defaultReadTimeout
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = defaultWriteTimeout
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "5432"
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "recruit"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Generation.Model == "" {
		cfg.Generation.Model = defaultModel
	}
	if cfg.Generation.MaxTokens <= 0 {
		cfg.Generation.MaxTokens = defaultMaxTokens
	}
	if cfg.Generation.Timeout <= 0 {
		cfg.Generation.Timeout = defaultGenerationTimeout
	}
	if cfg.Generation.RequestsPerMinute <= 0 {
		cfg.Generation.RequestsPerMinute = defaultRequestsPerMinute
	}
	if cfg.Generation.FetchTimeout <= 0 {
		cfg.Generation.FetchTimeout = defaultFetchTimeout
	}
	if cfg.Generation.CacheTTL <= 0 {
		cfg.Generation.CacheTTL = defaultCacheTTL
	}
	if cfg.Classify.LinkWordThreshold <= 0 {
		cfg.Classify.LinkWordThreshold = defaultLinkWordThreshold
	}
	if cfg.Classify.MinBriefWords <= 0 {
		cfg.Classify.MinBriefWords = defaultMinBriefWords
	}
	if cfg.Classify.UploadTextCap <= 0 {
		cfg.Classify.UploadTextCap = defaultUploadTextCap
	}
	if cfg.Classify.MaxUploadSizeBytes <= 0 {
		cfg.Classify.MaxUploadSizeBytes = defaultMaxUploadSizeBytes
	}
}

func overrideWithEnvVars(cfg *Config) {
	if v := os.Getenv("APP_DEBUG"); v != "" {
		cfg.Debug = parseBool(v)
	}
	if v := os.Getenv("RECRUIT_PORT"); v != "" {
		cfg.Server.Address = ":" + v
	}
	if v := os.Getenv("POSTGRES_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("POSTGRES_PORT"); v != "" {
		cfg.Database.Port = v
	}
	if v := os.Getenv("POSTGRES_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("POSTGRES_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("POSTGRES_DB"); v != "" {
		cfg.Database.DBName = v
	}
	if v := os.Getenv("POSTGRES_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Generation.APIKey = v
	}
	if v := os.Getenv("GENERATION_MODEL"); v != "" {
		cfg.Generation.Model = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i, o := range origins {
			origins[i] = strings.TrimSpace(o)
		}
		cfg.Server.CORSOrigins = origins
	}
}

// Validate checks the configuration and returns an error if it is unusable.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Generation.APIKey == "" {
		return errors.New("generation.api_key is required")
	}
	if c.Classify.LinkWordThreshold >= c.Classify.MinBriefWords {
		return fmt.Errorf("classify.link_word_threshold (%d) must be below classify.min_brief_words (%d)",
			c.Classify.LinkWordThreshold, c.Classify.MinBriefWords)
	}
	return nil
}

// parseBool accepts "true", "1", or "yes" (case-insensitive) as true.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}

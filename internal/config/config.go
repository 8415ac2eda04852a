// Package config loads service configuration from an optional YAML file and
// DECISIONTREE_* environment variables. Command-line flags are applied on top
// by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/decisiontree/pkg/persistence/middleware"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DECISIONTREE_"

// Store drivers.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config holds all service configuration.
type Config struct {
	// Server
	Addr string `mapstructure:"addr"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Dialog
	PromptStyle string `mapstructure:"prompt_style"` // legacy | natural
	TablePath   string `mapstructure:"table_path"`   // empty uses the built-in table

	Store StoreConfig `mapstructure:"store"`

	Metrics bool `mapstructure:"metrics"`
}

// StoreConfig selects and configures the session audit store.
type StoreConfig struct {
	Driver   string `mapstructure:"driver"`
	FilePath string `mapstructure:"file_path"`

	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
	RedisPrefix   string        `mapstructure:"redis_prefix"`
	TTL           time.Duration `mapstructure:"ttl"`

	// EncryptionKey (base64, 32 bytes) seals records at rest. FallbackKeys
	// are older keys still accepted for reading.
	EncryptionKey string   `mapstructure:"encryption_key"`
	FallbackKeys  []string `mapstructure:"fallback_keys"`
	// Mask lists patterns of record fields and answer keys to mask on save.
	Mask []string `mapstructure:"mask"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Addr:        ":8080",
		LogLevel:    "info",
		LogFormat:   "text",
		PromptStyle: "legacy",
		Store: StoreConfig{
			Driver:      StoreMemory,
			FilePath:    ".decisiontree/sessions",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "decisiontree:session:",
			TTL:         24 * time.Hour,
		},
		Metrics: true,
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if any),
// then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if raw == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           c,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Addr = getEnv("ADDR", c.Addr)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.PromptStyle = getEnv("PROMPT_STYLE", c.PromptStyle)
	c.TablePath = getEnv("TABLE_PATH", c.TablePath)

	c.Store.Driver = getEnv("STORE", c.Store.Driver)
	c.Store.FilePath = getEnv("STORE_PATH", c.Store.FilePath)
	c.Store.RedisAddr = getEnv("REDIS_ADDR", c.Store.RedisAddr)
	c.Store.RedisPassword = getEnv("REDIS_PASSWORD", c.Store.RedisPassword)
	c.Store.RedisPrefix = getEnv("REDIS_PREFIX", c.Store.RedisPrefix)
	c.Store.EncryptionKey = getEnv("STORE_ENCRYPTION_KEY", c.Store.EncryptionKey)
	if v := getEnv("STORE_FALLBACK_KEYS", ""); v != "" {
		c.Store.FallbackKeys = splitList(v)
	}
	if v := getEnv("STORE_MASK", ""); v != "" {
		c.Store.Mask = splitList(v)
	}

	var errs []error
	if v := getEnv("REDIS_DB", ""); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sREDIS_DB: %w", EnvPrefix, err))
		}
		c.Store.RedisDB = db
	}
	if v := getEnv("SESSION_TTL", ""); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSESSION_TTL: %w", EnvPrefix, err))
		}
		c.Store.TTL = ttl
	}
	if v := getEnv("METRICS", ""); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sMETRICS: %w", EnvPrefix, err))
		}
		c.Metrics = on
	}
	return errors.Join(errs...)
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	switch strings.ToLower(c.PromptStyle) {
	case "legacy", "natural":
	default:
		errs = append(errs, fmt.Errorf("prompt_style must be legacy or natural, got %q", c.PromptStyle))
	}
	switch c.Store.Driver {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		errs = append(errs, fmt.Errorf("store.driver must be memory, file or redis, got %q", c.Store.Driver))
	}
	if c.Store.TTL < 0 {
		errs = append(errs, fmt.Errorf("store.ttl must not be negative"))
	}
	if c.Store.EncryptionKey == "" && len(c.Store.FallbackKeys) > 0 {
		errs = append(errs, fmt.Errorf("store.fallback_keys requires store.encryption_key"))
	}
	if _, _, err := c.Store.Keys(); err != nil {
		errs = append(errs, err)
	}
	for _, p := range c.Store.Mask {
		if _, err := regexp.Compile(p); err != nil {
			errs = append(errs, fmt.Errorf("store.mask %q: %w", p, err))
		}
	}
	return errors.Join(errs...)
}

// Keys decodes the encryption keys. Active is nil when encryption is off.
func (s StoreConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if s.EncryptionKey == "" {
		return nil, nil, nil
	}
	active, err = middleware.DecodeKey(s.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("store.encryption_key: %w", err)
	}
	for i, k := range s.FallbackKeys {
		key, err := middleware.DecodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("store.fallback_keys[%d]: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return fallback
}

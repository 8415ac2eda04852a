package config

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decisiontree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
addr: ":9000"
log_format: json
prompt_style: natural
metrics: false
store:
  driver: redis
  redis_addr: redis:6379
  redis_db: 2
  ttl: 90m
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "natural", cfg.PromptStyle)
	assert.False(t, cfg.Metrics)
	assert.Equal(t, StoreRedis, cfg.Store.Driver)
	assert.Equal(t, "redis:6379", cfg.Store.RedisAddr)
	assert.Equal(t, 2, cfg.Store.RedisDB)
	assert.Equal(t, 90*time.Minute, cfg.Store.TTL)
	// Untouched fields keep their defaults.
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "decisiontree:session:", cfg.Store.RedisPrefix)
}

func TestLoad_FileUnknownKey(t *testing.T) {
	_, err := Load(writeFile(t, "adress: \":1\"\n"))
	assert.ErrorContains(t, err, "adress")
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "addr: \":9000\"\nstore:\n  driver: file\n")
	t.Setenv("DECISIONTREE_ADDR", ":7000")
	t.Setenv("DECISIONTREE_STORE", "memory")
	t.Setenv("DECISIONTREE_SESSION_TTL", "5m")
	t.Setenv("DECISIONTREE_METRICS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, StoreMemory, cfg.Store.Driver)
	assert.Equal(t, 5*time.Minute, cfg.Store.TTL)
	assert.False(t, cfg.Metrics)
}

func TestLoad_ConfigPathFromEnv(t *testing.T) {
	t.Setenv("DECISIONTREE_CONFIG", writeFile(t, "log_level: debug\n"))
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("DECISIONTREE_REDIS_DB", "two")
	t.Setenv("DECISIONTREE_SESSION_TTL", "soon")

	_, err := Load("")
	require.Error(t, err)
	assert.ErrorContains(t, err, "REDIS_DB")
	assert.ErrorContains(t, err, "SESSION_TTL")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LogFormat = "xml"
	cfg.PromptStyle = "pirate"
	cfg.Store.Driver = "postgres"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "log_format")
	assert.ErrorContains(t, err, "prompt_style")
	assert.ErrorContains(t, err, "store.driver")
}

func TestStoreProtection(t *testing.T) {
	key := base64.StdEncoding.EncodeToString(make([]byte, 32))
	old := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{1}, 32))

	t.Setenv("DECISIONTREE_STORE_ENCRYPTION_KEY", key)
	t.Setenv("DECISIONTREE_STORE_FALLBACK_KEYS", old+" , ")
	t.Setenv("DECISIONTREE_STORE_MASK", "user_id, last_prompt")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"user_id", "last_prompt"}, cfg.Store.Mask)

	active, fallback, err := cfg.Store.Keys()
	require.NoError(t, err)
	assert.Len(t, active, 32)
	require.Len(t, fallback, 1)
	assert.Equal(t, bytes.Repeat([]byte{1}, 32), fallback[0])
}

func TestValidate_StoreProtection(t *testing.T) {
	cfg := Default()
	cfg.Store.EncryptionKey = "c2hvcnQ="
	cfg.Store.Mask = []string{"("}
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "store.encryption_key")
	assert.ErrorContains(t, err, "store.mask")

	cfg = Default()
	cfg.Store.FallbackKeys = []string{"abc"}
	assert.ErrorContains(t, cfg.Validate(), "requires store.encryption_key")

	active, fallback, err := Default().Store.Keys()
	require.NoError(t, err)
	assert.Nil(t, active)
	assert.Nil(t, fallback)
}

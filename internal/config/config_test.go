package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v, err := NewViper("")
	require.NoError(t, err)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "inventory.json", cfg.DataFile)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, ":50051", cfg.GRPC.Addr)
	assert.Equal(t, "default", cfg.Redis.Name)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockkeeper.yaml")
	content := `
data_file: /var/lib/stock/inventory.json
low_stock_threshold: 12
log:
  level: debug
  format: json
http:
  addr: 127.0.0.1:9000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/stock/inventory.json", cfg.DataFile)
	assert.Equal(t, 12, cfg.LowStockThreshold)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, ":50051", cfg.GRPC.Addr)
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockkeeper.toml")
	content := `
backend = "redis"

[redis]
addr = "cache:6379"
name = "shop"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, "shop", cfg.Redis.Name)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STOCKKEEPER_DATA_FILE", "env.json")
	t.Setenv("STOCKKEEPER_LOW_STOCK_THRESHOLD", "3")
	t.Setenv("STOCKKEEPER_LOG_LEVEL", "warn")

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "env.json", cfg.DataFile)
	assert.Equal(t, 3, cfg.LowStockThreshold)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestNewViper_MissingFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{DataFile: "inventory.json", Backend: BackendFile, Log: LogConfig{Format: "console"}}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"unknown backend", func(c *Config) { c.Backend = "s3" }, true},
		{"file backend without path", func(c *Config) { c.DataFile = "" }, true},
		{"redis without addr", func(c *Config) { c.Backend = BackendRedis }, true},
		{"mysql with dsn", func(c *Config) { c.Backend = BackendMySQL; c.MySQL.DSN = "dsn" }, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

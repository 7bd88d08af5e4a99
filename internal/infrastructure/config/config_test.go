package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  mode: debug
database:
  host: db
  port: 3306
  user: root
  password: secret
  dbname: catalog
currency:
  default_country: GB
  default_symbol: "£"
cache:
  enabled: true
  ttl: 1m
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout, "未配置时使用默认值")
	assert.Equal(t, "GB", cfg.Currency.DefaultCountry)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "catalog", cfg.Cache.KeyPrefix)
	assert.Contains(t, cfg.Database.DSN(), "root:secret@tcp(db:3306)/catalog?charset=utf8mb4")
}

func TestLoadFile_EnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 8080\n")
	t.Setenv("BOOKCATALOG_SERVER_PORT", "7070")
	t.Setenv("BOOKCATALOG_DATABASE_PASSWORD", "from-env")
	t.Setenv("BOOKCATALOG_CURRENCY_DEFAULT_COUNTRY", "jp")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "jp", cfg.Currency.DefaultCountry)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080, Mode: "release"},
			JWT:      JWTConfig{Secret: "s3cr3t"},
			Currency: CurrencyConfig{DefaultCountry: "us"},
			Tracing:  TracingConfig{SampleRatio: 0.5},
		}
	}
	require.NoError(t, validate(valid()))

	tests := []struct {
		name   string
		modify func(cfg *Config)
	}{
		{"端口非法", func(cfg *Config) { cfg.Server.Port = 70000 }},
		{"生产环境默认密钥", func(cfg *Config) { cfg.JWT.Secret = defaultJWTSecret }},
		{"默认国家不是两位字母", func(cfg *Config) { cfg.Currency.DefaultCountry = "usa" }},
		{"时区非法", func(cfg *Config) { cfg.Server.TimeZone = "Mars/Base" }},
		{"采样率超出范围", func(cfg *Config) { cfg.Tracing.SampleRatio = 2 }},
		{"启用MQ但缺少地址", func(cfg *Config) { cfg.MQ.Enabled = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			assert.Error(t, validate(cfg))
		})
	}
}

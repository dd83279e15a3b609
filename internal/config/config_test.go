package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
password = "secret"

[booking]
timezone = "Europe/Moscow"
daily_quota_minutes = 90
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "Europe/Moscow", cfg.Booking.Timezone)
	assert.Equal(t, 90, cfg.Booking.DailyQuotaMinutes)
	assert.Equal(t, 60, cfg.Booking.MaxDurationMinutes)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
}

func TestLoad_PasswordFromEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	path := writeConfig(t, `
[database]
password = "from-file"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }},
		{"zero max duration", func(c *Config) { c.Booking.MaxDurationMinutes = 0 }},
		{"zero quota", func(c *Config) { c.Booking.DailyQuotaMinutes = 0 }},
		{"negative cancel notice", func(c *Config) { c.Booking.CancelNoticeMinutes = -1 }},
		{"inverted working day", func(c *Config) { c.Booking.DayStartHour = 21; c.Booking.DayEndHour = 9 }},
		{"slot step too big", func(c *Config) { c.Booking.SlotStepMinutes = 90 }},
		{"rate limit without burst", func(c *Config) { c.RateLimit.Burst = 0 }},
		{"rate limit without idle ttl", func(c *Config) { c.RateLimit.IdleTTLSeconds = 0 }},
		{"seed on postgres", func(c *Config) { c.Storage.Seed = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, Default().Validate())

	memorySeed := Default()
	memorySeed.Storage.Driver = StorageDriverMemory
	memorySeed.Storage.Seed = true
	assert.NoError(t, memorySeed.Validate())
}

func TestLoad_MemorySeedAndIdleTTL(t *testing.T) {
	path := writeConfig(t, `
[storage]
driver = "memory"
seed = true

[rate_limit]
idle_ttl_seconds = 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Storage.Seed)
	assert.Equal(t, 30, cfg.RateLimit.IdleTTLSeconds)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := Default().Database
	d.Password = "pw"

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=coworking_booking sslmode=disable",
		d.DSN())
}

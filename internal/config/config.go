package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

var (
	// ErrReadConfig возвращается, если файл конфигурации не удалось прочитать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при недопустимых значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Storage   StorageConfig   `toml:"storage"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Cache     CacheConfig     `toml:"cache"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// StorageConfig выбор хранилища: postgres (production) или memory (локальный запуск)
// Seed заполняет memory-хранилище стартовыми пользователями и комнатами
type StorageConfig struct {
	Driver string `toml:"driver"`
	Seed   bool   `toml:"seed"`
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-параметры бронирования
type BookingConfig struct {
	Timezone                  string `toml:"timezone"`
	MaxDurationMinutes        int    `toml:"max_duration_minutes"`
	DailyQuotaMinutes         int    `toml:"daily_quota_minutes"`
	CancelNoticeMinutes       int    `toml:"cancel_notice_minutes"`
	CompletionIntervalSeconds int    `toml:"completion_interval_seconds"`
	DayStartHour              int    `toml:"day_start_hour"`
	DayEndHour                int    `toml:"day_end_hour"`
	SlotStepMinutes           int    `toml:"slot_step_minutes"`
}

// RateLimitConfig ограничение частоты создания бронирований на пользователя
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	IdleTTLSeconds    int     `toml:"idle_ttl_seconds"` // сколько хранить bucket неактивного пользователя
}

// CacheConfig параметры кэша справочника комнат
type CacheConfig struct {
	RoomTTLSeconds int `toml:"room_ttl_seconds"`
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "coworking_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Storage: StorageConfig{
			Driver: StorageDriverPostgres,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "coworking-booking",
		},
		Booking: BookingConfig{
			Timezone:                  "UTC",
			MaxDurationMinutes:        60,
			DailyQuotaMinutes:         60,
			CancelNoticeMinutes:       120,
			CompletionIntervalSeconds: 60,
			DayStartHour:              9,
			DayEndHour:                21,
			SlotStepMinutes:           15,
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 2,
			Burst:             5,
			IdleTTLSeconds:    600,
		},
		Cache: CacheConfig{
			RoomTTLSeconds: 300,
		},
	}
}

// Load читает конфигурацию из TOML-файла поверх значений по умолчанию
// Пароль БД можно переопределить переменной окружения DB_PASSWORD
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if password, ok := os.LookupEnv("DB_PASSWORD"); ok {
		cfg.Database.Password = password
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("%w: storage.driver must be %q or %q", ErrInvalidConfig, StorageDriverPostgres, StorageDriverMemory)
	}

	b := c.Booking
	if b.MaxDurationMinutes <= 0 {
		return fmt.Errorf("%w: booking.max_duration_minutes must be positive", ErrInvalidConfig)
	}
	if b.DailyQuotaMinutes <= 0 {
		return fmt.Errorf("%w: booking.daily_quota_minutes must be positive", ErrInvalidConfig)
	}
	if b.CancelNoticeMinutes < 0 {
		return fmt.Errorf("%w: booking.cancel_notice_minutes must not be negative", ErrInvalidConfig)
	}
	if b.CompletionIntervalSeconds <= 0 {
		return fmt.Errorf("%w: booking.completion_interval_seconds must be positive", ErrInvalidConfig)
	}
	if b.DayStartHour < 0 || b.DayEndHour > 24 || b.DayStartHour >= b.DayEndHour {
		return fmt.Errorf("%w: booking.day_start_hour must be before booking.day_end_hour within 0..24", ErrInvalidConfig)
	}
	if b.SlotStepMinutes <= 0 || b.SlotStepMinutes > 60 {
		return fmt.Errorf("%w: booking.slot_step_minutes must be in 1..60", ErrInvalidConfig)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: rate_limit requires positive requests_per_second and burst", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && c.RateLimit.IdleTTLSeconds <= 0 {
		return fmt.Errorf("%w: rate_limit.idle_ttl_seconds must be positive", ErrInvalidConfig)
	}
	if c.Storage.Seed && c.Storage.Driver != StorageDriverMemory {
		return fmt.Errorf("%w: storage.seed is supported only by the %q driver", ErrInvalidConfig, StorageDriverMemory)
	}

	if c.Cache.RoomTTLSeconds < 0 {
		return fmt.Errorf("%w: cache.room_ttl_seconds must not be negative", ErrInvalidConfig)
	}

	return nil
}

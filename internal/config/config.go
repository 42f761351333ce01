package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrReadConfig возвращается при ошибке чтения/разбора файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается, если конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Redis         RedisConfig         `toml:"redis"`
	Notifications NotificationsConfig `toml:"notifications"`
	Booking       BookingConfig       `toml:"booking"`
	Subscriptions SubscriptionsConfig `toml:"subscriptions"`
	Invitations   InvitationsConfig   `toml:"invitations"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

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
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RedisConfig redis используется только для блокировок расписания
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	LockTTLMs  int    `toml:"lock_ttl_ms"`
	LockWaitMs int    `toml:"lock_wait_ms"`
}

func (c RedisConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLMs) * time.Millisecond
}

func (c RedisConfig) LockWait() time.Duration {
	return time.Duration(c.LockWaitMs) * time.Millisecond
}

type NotificationsConfig struct {
	Provider    string    `toml:"provider"` // ses | log
	FromAddress string    `toml:"from_address"`
	FromName    string    `toml:"from_name"`
	Recipient   string    `toml:"recipient"`
	SES         SESConfig `toml:"ses"`
}

type SESConfig struct {
	Region          string `toml:"region"`
	AccessKeyID     string `toml:"access_key_id"`
	SecretAccessKey string `toml:"secret_access_key"`
}

type BookingConfig struct {
	CatalogStartHour int    `toml:"catalog_start_hour"`
	CatalogEndHour   int    `toml:"catalog_end_hour"`
	Timezone         string `toml:"timezone"`
}

// Location часовой пояс площадок; пустое значение означает UTC
func (c BookingConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

type SubscriptionsConfig struct {
	PeriodDays              int    `toml:"period_days"`
	FreePlanID              string `toml:"free_plan_id"`
	ResetPeriodOnPlanChange bool   `toml:"reset_period_on_plan_change"`
}

type InvitationsConfig struct {
	CodeTTLHours       int     `toml:"code_ttl_hours"`
	RateLimitPerMinute float64 `toml:"rate_limit_per_minute"`
	RateLimitBurst     int     `toml:"rate_limit_burst"`
}

// Load читает .env (если есть) и TOML-файл, применяет переопределения из окружения,
// заполняет значения по умолчанию и валидирует результат
func Load(path string) (*Config, error) {
	// .env необязателен: в production переменные задаются окружением
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv секреты из окружения имеют приоритет над файлом
func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"DB_PASSWORD":           &c.Database.Password,
		"REDIS_PASSWORD":        &c.Redis.Password,
		"AWS_ACCESS_KEY_ID":     &c.Notifications.SES.AccessKeyID,
		"AWS_SECRET_ACCESS_KEY": &c.Notifications.SES.SecretAccessKey,
	}
	for env, target := range overrides {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*target = v
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "court-booking"
	}
	if c.Redis.LockTTLMs == 0 {
		c.Redis.LockTTLMs = 10000
	}
	if c.Redis.LockWaitMs == 0 {
		c.Redis.LockWaitMs = 3000
	}
	if c.Notifications.Provider == "" {
		c.Notifications.Provider = "log"
	}
	if c.Booking.CatalogStartHour == 0 && c.Booking.CatalogEndHour == 0 {
		c.Booking.CatalogStartHour = 8
		c.Booking.CatalogEndHour = 22
	}
	if c.Subscriptions.PeriodDays == 0 {
		c.Subscriptions.PeriodDays = 30
	}
	if c.Subscriptions.FreePlanID == "" {
		c.Subscriptions.FreePlanID = "free"
	}
	if c.Invitations.CodeTTLHours == 0 {
		c.Invitations.CodeTTLHours = 72
	}
	if c.Invitations.RateLimitPerMinute == 0 {
		c.Invitations.RateLimitPerMinute = 10
	}
	if c.Invitations.RateLimitBurst == 0 {
		c.Invitations.RateLimitBurst = 3
	}
}

// Validate проверяет обязательные значения и диапазоны
func (c *Config) Validate() error {
	var problems []string

	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Booking.CatalogStartHour < 0 || c.Booking.CatalogEndHour > 23 ||
		c.Booking.CatalogStartHour > c.Booking.CatalogEndHour {
		problems = append(problems, "booking catalog hours must satisfy 0 <= start <= end <= 23")
	}
	if _, err := c.Booking.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("booking.timezone: %v", err))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is enabled")
	}
	switch c.Notifications.Provider {
	case "log":
	case "ses":
		if c.Notifications.SES.Region == "" || c.Notifications.FromAddress == "" || c.Notifications.Recipient == "" {
			problems = append(problems, "notifications.ses requires region, from_address and recipient")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown notifications.provider %q", c.Notifications.Provider))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

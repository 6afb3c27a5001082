package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SlotReservationService/internal/domain"
	"github.com/m04kA/SMC-SlotReservationService/pkg/types"
)

// EnvConfigPath переменная окружения с путём к конфигу
const EnvConfigPath = "CONFIG_PATH"

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server    ServerConfig     `toml:"server"`
	Database  DatabaseConfig   `toml:"database"`
	Storage   StorageConfig    `toml:"storage"`
	Logs      LogsConfig       `toml:"logs"`
	Metrics   MetricsConfig    `toml:"metrics"`
	Booking   BookingConfig    `toml:"booking"`
	Commerce  CommerceConfig   `toml:"commerce"`
	RateLimit RateLimitConfig  `toml:"rate_limit"`
	Schedules []ScheduleConfig `toml:"schedules"`
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

type StorageConfig struct {
	Driver string `toml:"driver"` // postgres | memory
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type BookingConfig struct {
	DefaultResourceID     string `toml:"default_resource_id"`
	HoldTTLMinutes        int    `toml:"hold_ttl_minutes"`
	ReaperIntervalSeconds int    `toml:"reaper_interval_seconds"`
	ReaperBatchSize       int    `toml:"reaper_batch_size"`
	InternalToken         string `toml:"internal_token"`
}

func (c BookingConfig) HoldTTL() time.Duration {
	return time.Duration(c.HoldTTLMinutes) * time.Minute
}

func (c BookingConfig) ReaperInterval() time.Duration {
	return time.Duration(c.ReaperIntervalSeconds) * time.Second
}

// CommerceConfig клиент коммерческой платформы; пустой URL отключает проверку позиций корзины
type CommerceConfig struct {
	URL            string `toml:"url"`
	PublishableKey string `toml:"publishable_key"`
	Timeout        int    `toml:"timeout"` // секунды
}

func (c CommerceConfig) Enabled() bool {
	return c.URL != ""
}

// RateLimitConfig ограничение частоты запросов удержания с одного клиента
type RateLimitConfig struct {
	Enabled           bool `toml:"enabled"`
	RequestsPerMinute int  `toml:"requests_per_minute"`
	Burst             int  `toml:"burst"`
}

type HoursConfig struct {
	Open  string `toml:"open"`
	Close string `toml:"close"`
}

type ScheduleConfig struct {
	ResourceID           string                 `toml:"resource_id"`
	Timezone             string                 `toml:"timezone"`
	BlockMinutes         int                    `toml:"block_minutes"`
	SlotIncrementMinutes int                    `toml:"slot_increment_minutes"`
	MinNoticeMinutes     int                    `toml:"min_notice_minutes"`
	BlackoutDates        []string               `toml:"blackout_dates"`
	Hours                map[string]HoursConfig `toml:"hours"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ToDomain собирает доменное расписание; вызывается после валидации
func (c ScheduleConfig) ToDomain() (*domain.Schedule, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: schedule %q: timezone %q: %v", ErrInvalidConfig, c.ResourceID, c.Timezone, err)
	}

	weekly := make(map[time.Weekday]domain.DayHours, len(c.Hours))
	for day, hours := range c.Hours {
		weekday, ok := weekdays[strings.ToLower(day)]
		if !ok {
			return nil, fmt.Errorf("%w: schedule %q: unknown weekday %q", ErrInvalidConfig, c.ResourceID, day)
		}
		open, err := types.NewTimeStringFromString(hours.Open)
		if err != nil {
			return nil, fmt.Errorf("%w: schedule %q: %s open: %v", ErrInvalidConfig, c.ResourceID, day, err)
		}
		closeAt, err := types.NewTimeStringFromString(hours.Close)
		if err != nil {
			return nil, fmt.Errorf("%w: schedule %q: %s close: %v", ErrInvalidConfig, c.ResourceID, day, err)
		}
		if !open.IsBefore(closeAt) {
			return nil, fmt.Errorf("%w: schedule %q: %s open %s must be before close %s",
				ErrInvalidConfig, c.ResourceID, day, open, closeAt)
		}
		weekly[weekday] = domain.DayHours{Open: open, Close: closeAt}
	}

	blackouts := make(map[string]struct{}, len(c.BlackoutDates))
	for _, date := range c.BlackoutDates {
		if _, err := time.Parse(domain.DateFormat, date); err != nil {
			return nil, fmt.Errorf("%w: schedule %q: blackout date %q", ErrInvalidConfig, c.ResourceID, date)
		}
		blackouts[date] = struct{}{}
	}

	return &domain.Schedule{
		ResourceID:           c.ResourceID,
		Location:             loc,
		Weekly:               weekly,
		Blackouts:            blackouts,
		BlockMinutes:         c.BlockMinutes,
		SlotIncrementMinutes: c.SlotIncrementMinutes,
		MinNoticeMinutes:     c.MinNoticeMinutes,
	}, nil
}

// Load читает TOML-конфиг. Если задан CONFIG_PATH, он имеет приоритет над path.
func Load(path string) (*Config, error) {
	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		path = envPath
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
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

	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverPostgres
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "slot-reservation-service"
	}

	if c.Booking.DefaultResourceID == "" {
		c.Booking.DefaultResourceID = domain.DefaultResourceID
	}
	if c.Booking.HoldTTLMinutes == 0 {
		c.Booking.HoldTTLMinutes = int(domain.DefaultHoldTTL / time.Minute)
	}
	if c.Booking.ReaperIntervalSeconds == 0 {
		c.Booking.ReaperIntervalSeconds = int(domain.DefaultReaperInterval / time.Second)
	}
	if c.Booking.ReaperBatchSize == 0 {
		c.Booking.ReaperBatchSize = domain.DefaultReaperBatchSize
	}

	if c.Commerce.Timeout == 0 {
		c.Commerce.Timeout = 5
	}

	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 60
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}

	for i := range c.Schedules {
		s := &c.Schedules[i]
		if s.Timezone == "" {
			s.Timezone = "UTC"
		}
		if s.BlockMinutes == 0 {
			s.BlockMinutes = domain.DefaultBlockMinutes
		}
		if s.SlotIncrementMinutes == 0 {
			s.SlotIncrementMinutes = domain.DefaultSlotIncrementMinutes
		}
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("%w: storage.driver must be %q or %q, got %q",
			ErrInvalidConfig, StorageDriverPostgres, StorageDriverMemory, c.Storage.Driver)
	}

	if c.Booking.HoldTTLMinutes < 0 {
		return fmt.Errorf("%w: booking.hold_ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.ReaperIntervalSeconds < 0 {
		return fmt.Errorf("%w: booking.reaper_interval_seconds must be positive", ErrInvalidConfig)
	}
	if c.Booking.ReaperBatchSize < 0 {
		return fmt.Errorf("%w: booking.reaper_batch_size must be positive", ErrInvalidConfig)
	}

	if c.RateLimit.RequestsPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: rate_limit values must be positive", ErrInvalidConfig)
	}

	if len(c.Schedules) == 0 {
		return fmt.Errorf("%w: at least one [[schedules]] entry is required", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(c.Schedules))
	for _, s := range c.Schedules {
		if s.ResourceID == "" {
			return fmt.Errorf("%w: schedules.resource_id is required", ErrInvalidConfig)
		}
		if _, dup := seen[s.ResourceID]; dup {
			return fmt.Errorf("%w: duplicate schedule %q", ErrInvalidConfig, s.ResourceID)
		}
		seen[s.ResourceID] = struct{}{}

		if s.BlockMinutes < domain.MinBlockMinutes || s.BlockMinutes > domain.MaxBlockMinutes {
			return fmt.Errorf("%w: schedule %q: block_minutes out of range", ErrInvalidConfig, s.ResourceID)
		}
		if s.SlotIncrementMinutes < domain.MinBlockMinutes || s.SlotIncrementMinutes > domain.MaxBlockMinutes {
			return fmt.Errorf("%w: schedule %q: slot_increment_minutes out of range", ErrInvalidConfig, s.ResourceID)
		}
		if s.MinNoticeMinutes < 0 || s.MinNoticeMinutes > domain.MaxNoticeMinutes {
			return fmt.Errorf("%w: schedule %q: min_notice_minutes out of range", ErrInvalidConfig, s.ResourceID)
		}
		if _, err := s.ToDomain(); err != nil {
			return err
		}
	}

	if _, ok := seen[c.Booking.DefaultResourceID]; !ok {
		return fmt.Errorf("%w: default resource %q has no schedule", ErrInvalidConfig, c.Booking.DefaultResourceID)
	}

	return nil
}

// DomainSchedules собирает доменные расписания всех ресурсов
func (c *Config) DomainSchedules() ([]*domain.Schedule, error) {
	schedules := make([]*domain.Schedule, 0, len(c.Schedules))
	for _, sc := range c.Schedules {
		s, err := sc.ToDomain()
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/RBeauty-BookingClient/internal/domain"
)

// Config корневая конфигурация приложения
type Config struct {
	API     APIConfig     `toml:"api"`
	Booking BookingConfig `toml:"booking"`
	Catalog CatalogConfig `toml:"catalog"`
	Logs    LogsConfig    `toml:"logs"`
	Metrics MetricsConfig `toml:"metrics"`
}

// APIConfig настройки подключения к API салона
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// BookingConfig бизнес-политика бронирования
type BookingConfig struct {
	InitialStatus           string   `toml:"initial_status"`            // "pending" или "confirmed", политика бэкенда
	CancellationWindowHours int      `toml:"cancellation_window_hours"` // минимальное время до начала для отмены
	AdvanceBookingDays      int      `toml:"advance_booking_days"`      // горизонт бронирования
	ClosedWeekdays          []string `toml:"closed_weekdays"`           // например ["Sunday"]
	ClosedDates             []string `toml:"closed_dates"`              // конкретные закрытые даты, YYYY-MM-DD
}

// CatalogConfig настройки кэша каталога услуг
type CatalogConfig struct {
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	Port        int    `toml:"port"`
	ServiceName string `toml:"service_name"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %q: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:5000/api",
			TimeoutSeconds: 15,
		},
		Booking: BookingConfig{
			InitialStatus:           string(domain.DefaultInitialStatus),
			CancellationWindowHours: domain.DefaultCancellationWindowHours,
			AdvanceBookingDays:      domain.DefaultAdvanceBookingDays,
			ClosedWeekdays:          []string{"Sunday"},
		},
		Catalog: CatalogConfig{
			CacheTTLSeconds: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			Port:        9090,
			ServiceName: "rbeauty-booking-client",
		},
	}
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: api.base_url is required")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: api.timeout_seconds must be positive")
	}

	switch domain.AppointmentStatus(c.Booking.InitialStatus) {
	case domain.StatusPending, domain.StatusConfirmed:
	default:
		return fmt.Errorf("config: booking.initial_status must be %q or %q, got %q",
			domain.StatusPending, domain.StatusConfirmed, c.Booking.InitialStatus)
	}

	if c.Booking.CancellationWindowHours < 0 {
		return fmt.Errorf("config: booking.cancellation_window_hours must not be negative")
	}
	if c.Booking.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		c.Booking.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("config: booking.advance_booking_days must be within [%d, %d]",
			domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if _, err := c.BookingPolicy(); err != nil {
		return err
	}

	return nil
}

// APITimeout возвращает таймаут HTTP клиента
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// CatalogTTL возвращает TTL кэша каталога
func (c *Config) CatalogTTL() time.Duration {
	return time.Duration(c.Catalog.CacheTTLSeconds) * time.Second
}

// BookingPolicy конвертирует секцию [booking] в доменную политику
func (c *Config) BookingPolicy() (domain.BookingPolicy, error) {
	policy := domain.BookingPolicy{
		InitialStatus:      domain.AppointmentStatus(c.Booking.InitialStatus),
		CancellationWindow: time.Duration(c.Booking.CancellationWindowHours) * time.Hour,
		AdvanceBookingDays: c.Booking.AdvanceBookingDays,
	}

	for _, name := range c.Booking.ClosedWeekdays {
		wd, err := parseWeekday(name)
		if err != nil {
			return domain.BookingPolicy{}, fmt.Errorf("config: booking.closed_weekdays: %w", err)
		}
		policy.ClosedWeekdays = append(policy.ClosedWeekdays, wd)
	}

	for _, s := range c.Booking.ClosedDates {
		d, err := time.ParseInLocation(domain.DateFormat, s, time.Local)
		if err != nil {
			return domain.BookingPolicy{}, fmt.Errorf("config: booking.closed_dates: invalid date %q", s)
		}
		policy.ClosedDates = append(policy.ClosedDates, d)
	}

	return policy, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if wd.String() == name {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

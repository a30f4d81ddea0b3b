package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Storage    StorageConfig    `yaml:"storage"`
	Database   DatabaseConfig   `yaml:"database"`
	RabbitMQ   RabbitMQConfig   `yaml:"rabbitmq"`
	Orders     OrdersConfig     `yaml:"orders"`
	Payment    PaymentConfig    `yaml:"payment"`
	Simulation SimulationConfig `yaml:"simulation"`
	Staff      StaffConfig      `yaml:"staff"`
}

type AppConfig struct {
	Timezone string `yaml:"timezone"`
	LogLevel string `yaml:"log_level"`
}

type StorageConfig struct {
	Driver string `yaml:"driver"` // memory | postgres
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RabbitMQConfig with an empty Host disables messaging.
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

type OrdersConfig struct {
	StrictTransitions bool          `yaml:"strict_transitions"`
	MinEstimate       int           `yaml:"min_estimate_minutes"`
	MaxEstimate       int           `yaml:"max_estimate_minutes"`
	PaymentTTL        time.Duration `yaml:"payment_ttl"`
	SweepInterval     time.Duration `yaml:"sweep_interval"`
}

type PaymentConfig struct {
	SuccessRate float64 `yaml:"success_rate"`
}

// SimulationConfig holds the artificial latencies of the remote-shaped calls.
type SimulationConfig struct {
	ValidateDelay time.Duration `yaml:"validate_delay"`
	MenuDelay     time.Duration `yaml:"menu_delay"`
	ItemDelay     time.Duration `yaml:"item_delay"`
	CreateDelay   time.Duration `yaml:"create_delay"`
	StatusDelay   time.Duration `yaml:"status_delay"`
	HistoryDelay  time.Duration `yaml:"history_delay"`
	PaymentDelay  time.Duration `yaml:"payment_delay"`
	RevenueDelay  time.Duration `yaml:"revenue_delay"`
}

type StaffConfig struct {
	Password string `yaml:"password"`
}

// Default mirrors the timings and rules the ordering app has always used.
func Default() Config {
	return Config{
		App:     AppConfig{Timezone: "UTC", LogLevel: "debug"},
		Storage: StorageConfig{Driver: "memory"},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "restaurant_user",
			Password: "restaurant_pass",
			Database: "restaurant_db",
		},
		RabbitMQ: RabbitMQConfig{Port: 5672, User: "guest", Password: "guest"},
		Orders: OrdersConfig{
			MinEstimate:   10,
			MaxEstimate:   25,
			PaymentTTL:    15 * time.Minute,
			SweepInterval: time.Minute,
		},
		Payment: PaymentConfig{SuccessRate: 0.95},
		Simulation: SimulationConfig{
			ValidateDelay: 500 * time.Millisecond,
			MenuDelay:     800 * time.Millisecond,
			ItemDelay:     500 * time.Millisecond,
			CreateDelay:   time.Second,
			StatusDelay:   500 * time.Millisecond,
			HistoryDelay:  800 * time.Millisecond,
			PaymentDelay:  1500 * time.Millisecond,
			RevenueDelay:  800 * time.Millisecond,
		},
		Staff: StaffConfig{Password: "admin123"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse yaml: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("invalid config: unknown storage driver %q", c.Storage.Driver)
	}

	if c.Storage.Driver == "postgres" && c.Database.Host == "" {
		return errors.New("invalid config: database host is required for postgres storage")
	}

	if c.Payment.SuccessRate < 0 || c.Payment.SuccessRate > 1 {
		return fmt.Errorf("invalid config: payment success_rate %v out of [0,1]", c.Payment.SuccessRate)
	}

	if c.Orders.MinEstimate < 1 || c.Orders.MaxEstimate < c.Orders.MinEstimate {
		return fmt.Errorf("invalid config: estimate range [%d,%d]", c.Orders.MinEstimate, c.Orders.MaxEstimate)
	}

	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid config: timezone: %w", err)
	}

	return nil
}

// Location returns the business time zone used for calendar days.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseURL returns a PostgreSQL connection string.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL.
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}

// SharedStorage reports whether state outlives the process and is visible to
// other modes. The memory driver starts empty in every process.
func (c *Config) SharedStorage() bool {
	return c.Storage.Driver == "postgres"
}

func (c *Config) MessagingEnabled() bool {
	return c.RabbitMQ.Host != ""
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application parameters.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	RabbitMQ RabbitMQConfig `yaml:"rabbitmq"`
	Loyalty  LoyaltyConfig  `yaml:"loyalty"`
	Render   RenderConfig   `yaml:"render"`
}

type HTTPConfig struct {
	Port int `yaml:"port"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"` // file | postgres
	DataDir string `yaml:"data_dir"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

type RabbitMQConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	VHost    string `yaml:"vhost"`
}

type LoyaltyConfig struct {
	// StartingBonus is credited once when a card is issued.
	StartingBonus int `yaml:"starting_bonus"`
	// PointsDivisor: one point per this many currency units on an order.
	PointsDivisor int `yaml:"points_divisor"`
}

type RenderConfig struct {
	OutputDir string `yaml:"output_dir"`
	Title     string `yaml:"title"`
}

func Default() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 3000},
		Storage:  StorageConfig{Backend: "file", DataDir: "data"},
		Database: DatabaseConfig{Port: 5432, SSLMode: "disable"},
		RabbitMQ: RabbitMQConfig{Port: 5672, VHost: "/"},
		Loyalty:  LoyaltyConfig{StartingBonus: 5, PointsDivisor: 10},
		Render:   RenderConfig{OutputDir: "cards", Title: "Loyalty Card"},
	}
}

// Load reads a YAML config file over the defaults. A missing path keeps the
// defaults so the single-process file-backed mode works with no config at all.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Backend {
	case "file":
		if c.Storage.DataDir == "" {
			return fmt.Errorf("storage.data_dir is required for the file backend")
		}
	case "postgres":
		if c.Database.Host == "" || c.Database.User == "" || c.Database.Database == "" {
			return fmt.Errorf("database config incomplete")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.Host == "" {
		return fmt.Errorf("rabbitmq config incomplete")
	}
	if c.Loyalty.StartingBonus < 0 || c.Loyalty.PointsDivisor <= 0 {
		return fmt.Errorf("loyalty config out of range")
	}
	return nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	Materials  MaterialsConfig  `json:"materials"`
	Benchmarks BenchmarksConfig `json:"benchmarks"`
	Logging    LoggingConfig    `json:"logging"`
}

// ServerConfig represents server configuration.
type ServerConfig struct {
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

// MaterialsConfig selects where the material coefficient library comes
// from: a local YAML file or the externally synchronized Postgres table.
type MaterialsConfig struct {
	Source          string `json:"source"` // "file" or "postgres"
	FilePath        string `json:"file_path"`
	RefreshSchedule string `json:"refresh_schedule"` // cron spec, postgres source only
}

// BenchmarksConfig points at an external benchmark table file; empty means
// the built-in tables.
type BenchmarksConfig struct {
	FilePath string `json:"file_path"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from an optional .env file, an optional
// JSON config file, and environment variable overrides, in that order.
func LoadConfig(configPath string) (*Config, error) {
	// .env is a developer convenience; absence is not an error.
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    os.Getenv("USER"),
			DBName:  "carbonconstruct",
			SSLMode: "disable",
		},
		Materials: MaterialsConfig{
			Source:          "file",
			FilePath:        "config/materials.yaml",
			RefreshSchedule: "@hourly",
		},
		Logging: LoggingConfig{Level: "info"},
	}

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if dbHost := os.Getenv("DATABASE_HOST"); dbHost != "" {
		config.Database.Host = dbHost
	}
	if dbUser := os.Getenv("DATABASE_USER"); dbUser != "" {
		config.Database.User = dbUser
	}
	if dbPass := os.Getenv("DATABASE_PASSWORD"); dbPass != "" {
		config.Database.Password = dbPass
	}
	if dbName := os.Getenv("DATABASE_DBNAME"); dbName != "" {
		config.Database.DBName = dbName
	}
	if source := os.Getenv("MATERIALS_SOURCE"); source != "" {
		config.Materials.Source = source
	}
	if path := os.Getenv("MATERIALS_FILE"); path != "" {
		config.Materials.FilePath = path
	}
	if path := os.Getenv("BENCHMARKS_FILE"); path != "" {
		config.Benchmarks.FilePath = path
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// GetDatabaseURL returns the database connection string.
func (c *DatabaseConfig) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// GetServerAddr returns the server address.
func (c *ServerConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

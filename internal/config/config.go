package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"golang.org/x/crypto/bcrypt"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver       string `toml:"driver"`
	URL          string `toml:"url"`
	Host         string `toml:"host"`
	Port         string `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Name         string `toml:"name"`
	MaxOpenConns int    `toml:"max_open_conns"`
	LogQueries   bool   `toml:"log_queries"`
}

type Config struct {
	Port       string         `toml:"port"`
	GinMode    string         `toml:"gin_mode"`
	LogLevel   string         `toml:"log_level"`
	SecretKey  string         `toml:"secret_key"`
	BcryptCost int            `toml:"bcrypt_cost"`
	DB         DatabaseConfig `toml:"database"`
}

// Default returns the configuration used when neither a file nor the
// environment says otherwise.
func Default() *Config {
	return &Config{
		Port:       "8080",
		GinMode:    "debug",
		LogLevel:   "info",
		BcryptCost: bcrypt.DefaultCost,
		DB: DatabaseConfig{
			Driver:       DriverPostgres,
			Host:         "localhost",
			Port:         "5432",
			User:         "postgres",
			Password:     "postgres",
			Name:         "tasks",
			MaxOpenConns: 10,
		},
	}
}

// Load builds the configuration once at process start: defaults, then the
// TOML file at path (if path is non-empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.SecretKey = getEnv("SECRET_KEY", c.SecretKey)
	c.DB.Driver = getEnv("DB_DRIVER", c.DB.Driver)
	c.DB.URL = getEnv("DATABASE_URL", c.DB.URL)
	c.DB.Host = getEnv("DB_HOST", c.DB.Host)
	c.DB.Port = getEnv("DB_PORT", c.DB.Port)
	c.DB.User = getEnv("DB_USER", c.DB.User)
	c.DB.Password = getEnv("DB_PASSWORD", c.DB.Password)
	c.DB.Name = getEnv("DB_NAME", c.DB.Name)

	var err error
	if c.BcryptCost, err = getEnvInt("BCRYPT_COST", c.BcryptCost); err != nil {
		return err
	}
	if c.DB.MaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", c.DB.MaxOpenConns); err != nil {
		return err
	}
	return nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.DB.Driver)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.GinMode == "release" && c.SecretKey == "" {
		return errors.New("SECRET_KEY is required in release mode")
	}
	return nil
}

// DSN returns the connection string for the configured driver.
// DATABASE_URL wins over the individual fields.
func (db *DatabaseConfig) DSN() string {
	if db.URL != "" {
		return db.URL
	}
	switch db.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			db.Host, db.Port, db.User, db.Password, db.Name)
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			db.User, db.Password, db.Host, db.Port, db.Name)
	case DriverSQLite:
		return fmt.Sprintf("%s.db?_pragma=foreign_keys(1)", db.Name)
	default:
		return ""
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

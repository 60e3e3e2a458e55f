package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Inventory InventoryConfig
	S3        S3Config
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Enabled         bool
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds session token and password hashing configuration.
type AuthConfig struct {
	JWTSecret     string
	JWTTTLMinutes int
	JWTIssuer     string
	BcryptCost    int
}

// TokenTTL returns the session token lifetime.
func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.JWTTTLMinutes) * time.Minute
}

// InventoryConfig holds inventory file and stock policy configuration.
type InventoryConfig struct {
	DataDir            string
	File               string // loaded at startup when set
	AllowNegativeStock bool
}

// S3Config holds AWS S3 configuration for inventory snapshots and reports.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "inventory/")
}

// Load loads configuration from environment variables. If CONFIG_FILE names an
// env-format file, its values are used where the environment has none.
func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getString(v, "SERVER_HOST", "0.0.0.0"),
			Port: getInt(v, "SERVER_PORT", 8080),
		},
		Database: databaseConfig(v),
		Logger: LoggerConfig{
			Level:  getString(v, "LOG_LEVEL", "info"),
			Format: getString(v, "LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:     getString(v, "JWT_SECRET", ""),
			JWTTTLMinutes: getInt(v, "JWT_TTL_MINUTES", 60),
			JWTIssuer:     getString(v, "JWT_ISSUER", "mini-inventory"),
			BcryptCost:    getInt(v, "BCRYPT_COST", 10),
		},
		Inventory: InventoryConfig{
			DataDir:            getString(v, "INVENTORY_DATA_DIR", "data"),
			File:               getString(v, "INVENTORY_FILE", ""),
			AllowNegativeStock: getBool(v, "INVENTORY_ALLOW_NEGATIVE_STOCK", true),
		},
		S3: S3Config{
			Enabled: getBool(v, "S3_ENABLED", false),
			Bucket:  getString(v, "S3_BUCKET", ""),
			Region:  getString(v, "S3_REGION", "us-east-1"),
			Prefix:  getString(v, "S3_PREFIX", "inventory/"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadDatabase loads and validates only the DB_* settings, for tools that
// talk to the database without running the server.
func LoadDatabase() (DatabaseConfig, error) {
	v, err := newViper()
	if err != nil {
		return DatabaseConfig{}, err
	}

	cfg := databaseConfig(v)
	if err := cfg.Validate(); err != nil {
		return DatabaseConfig{}, fmt.Errorf("database configuration validation failed: %w", err)
	}
	return cfg, nil
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}
	return v, nil
}

func databaseConfig(v *viper.Viper) DatabaseConfig {
	return DatabaseConfig{
		Enabled:         getBool(v, "DB_ENABLED", false),
		Host:            getString(v, "DB_HOST", "localhost"),
		Port:            getInt(v, "DB_PORT", 5432),
		User:            getString(v, "DB_USER", "postgres"),
		Password:        getString(v, "DB_PASSWORD", ""),
		Database:        getString(v, "DB_NAME", "inventory"),
		MaxConnections:  getInt(v, "DB_MAX_CONNECTIONS", 25),
		MinConnections:  getInt(v, "DB_MIN_CONNECTIONS", 5),
		MaxConnLifetime: getInt(v, "DB_MAX_CONN_LIFETIME", 300),
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Enabled {
		if err := c.Database.Validate(); err != nil {
			return err
		}
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.Auth.JWTTTLMinutes < 1 {
		return fmt.Errorf("JWT TTL must be at least 1 minute")
	}

	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("invalid bcrypt cost: %d (must be between 4 and 31)", c.Auth.BcryptCost)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// Validate validates the database settings.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getString(v *viper.Viper, key, defaultValue string) string {
	if v.IsSet(key) {
		if value := v.GetString(key); value != "" {
			return value
		}
	}
	return defaultValue
}

func getInt(v *viper.Viper, key string, defaultValue int) int {
	if value := getString(v, key, ""); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBool(v *viper.Viper, key string, defaultValue bool) bool {
	if value := getString(v, key, ""); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

package config

import (
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Config holds all configuration options for the punchclock application
type Config struct {
	Database    DatabaseConfig
	Sync        SyncConfig
	Auth        AuthConfig
	Timer       TimerConfig
	Application ApplicationConfig
	Server      ServerConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `env:"PUNCH_DB_DIR"`
	Filename       string        `env:"PUNCH_DB_FILENAME"`
	PoolSize       int           `env:"PUNCH_DB_POOL_SIZE"`
	BusyTimeout    time.Duration `env:"PUNCH_DB_BUSY_TIMEOUT"`
	DirPermissions uint32        `env:"PUNCH_DB_DIR_PERMISSIONS"`
}

// SyncConfig holds clock synchronization configuration
type SyncConfig struct {
	BaseURL string `env:"PUNCH_SYNC_BASE_URL"`
}

// AuthConfig holds the authentication service settings. Nothing consumes
// them yet; they are carried for the hosted-sync service integration.
type AuthConfig struct {
	ServiceURL    string `env:"PUNCH_AUTH_URL"`
	APIKey        string `env:"PUNCH_AUTH_API_KEY"`
	SigningSecret string `env:"PUNCH_AUTH_SIGNING_SECRET"`
}

// TimerConfig holds the activity rotation lengths
type TimerConfig struct {
	Focus time.Duration `env:"PUNCH_TIMER_FOCUS"`
	Break time.Duration `env:"PUNCH_TIMER_BREAK"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"PUNCH_APP_TIMEOUT"`
	Verbose bool          `env:"PUNCH_APP_VERBOSE"`
}

// ServerConfig holds the reference endpoint server configuration
type ServerConfig struct {
	ListenAddr string `env:"PUNCH_SERVER_LISTEN_ADDR"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".punchclock")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "punchclock.db",
			PoolSize:       4,
			BusyTimeout:    5 * time.Second,
			DirPermissions: 0755,
		},
		Sync: SyncConfig{
			BaseURL: "http://127.0.0.1:8080",
		},
		Timer: TimerConfig{
			Focus: 90 * time.Minute,
			Break: 10 * time.Minute,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
		Server: ServerConfig{
			ListenAddr: "127.0.0.1:8080",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables.
// Values that fail to parse keep their current setting.
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("PUNCH_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("PUNCH_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if size := os.Getenv("PUNCH_DB_POOL_SIZE"); size != "" {
		c.Database.PoolSize = ParseIntWithFallback(size, c.Database.PoolSize)
	}
	if timeout := os.Getenv("PUNCH_DB_BUSY_TIMEOUT"); timeout != "" {
		c.Database.BusyTimeout = ParseDurationWithFallback(timeout, c.Database.BusyTimeout)
	}
	if perms := os.Getenv("PUNCH_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Sync configuration
	if baseURL := os.Getenv("PUNCH_SYNC_BASE_URL"); baseURL != "" {
		c.Sync.BaseURL = baseURL
	}

	// Auth configuration
	if serviceURL := os.Getenv("PUNCH_AUTH_URL"); serviceURL != "" {
		c.Auth.ServiceURL = serviceURL
	}
	if apiKey := os.Getenv("PUNCH_AUTH_API_KEY"); apiKey != "" {
		c.Auth.APIKey = apiKey
	}
	if secret := os.Getenv("PUNCH_AUTH_SIGNING_SECRET"); secret != "" {
		c.Auth.SigningSecret = secret
	}

	// Timer configuration
	if focus := os.Getenv("PUNCH_TIMER_FOCUS"); focus != "" {
		c.Timer.Focus = ParseDurationWithFallback(focus, c.Timer.Focus)
	}
	if brk := os.Getenv("PUNCH_TIMER_BREAK"); brk != "" {
		c.Timer.Break = ParseDurationWithFallback(brk, c.Timer.Break)
	}

	// Application configuration
	if timeout := os.Getenv("PUNCH_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("PUNCH_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	// Server configuration
	if addr := os.Getenv("PUNCH_SERVER_LISTEN_ADDR"); addr != "" {
		c.Server.ListenAddr = addr
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.PoolSize < 1 {
		return &ConfigError{Field: "database.pool_size", Message: "pool size must be at least 1"}
	}
	if c.Database.BusyTimeout <= 0 {
		return &ConfigError{Field: "database.busy_timeout", Message: "busy timeout must be positive"}
	}

	// Validate sync configuration
	u, err := url.Parse(c.Sync.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ConfigError{Field: "sync.base_url", Message: "base URL must be an absolute URL"}
	}

	// Validate timer configuration
	if c.Timer.Focus <= 0 {
		return &ConfigError{Field: "timer.focus", Message: "focus length must be positive"}
	}
	if c.Timer.Break <= 0 {
		return &ConfigError{Field: "timer.break", Message: "break length must be positive"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	// Validate server configuration
	if c.Server.ListenAddr == "" {
		return &ConfigError{Field: "server.listen_addr", Message: "listen address cannot be empty"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

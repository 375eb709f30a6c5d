package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Database.Filename != "punchclock.db" {
		t.Errorf("Database.Filename = %q, want punchclock.db", cfg.Database.Filename)
	}
	if cfg.Database.PoolSize != 4 {
		t.Errorf("Database.PoolSize = %d, want 4", cfg.Database.PoolSize)
	}
	if cfg.Database.BusyTimeout != 5*time.Second {
		t.Errorf("Database.BusyTimeout = %v, want 5s", cfg.Database.BusyTimeout)
	}
	if cfg.Database.DirPermissions != 0755 {
		t.Errorf("Database.DirPermissions = %o, want 0755", cfg.Database.DirPermissions)
	}
	if cfg.Sync.BaseURL != "http://127.0.0.1:8080" {
		t.Errorf("Sync.BaseURL = %q, want http://127.0.0.1:8080", cfg.Sync.BaseURL)
	}
	if cfg.Timer.Focus != 90*time.Minute {
		t.Errorf("Timer.Focus = %v, want 90m", cfg.Timer.Focus)
	}
	if cfg.Timer.Break != 10*time.Minute {
		t.Errorf("Timer.Break = %v, want 10m", cfg.Timer.Break)
	}
	if cfg.Application.Timeout != 60*time.Second {
		t.Errorf("Application.Timeout = %v, want 60s", cfg.Application.Timeout)
	}
	if cfg.Server.ListenAddr != "127.0.0.1:8080" {
		t.Errorf("Server.ListenAddr = %q, want 127.0.0.1:8080", cfg.Server.ListenAddr)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default configuration should validate, got %v", err)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PUNCH_DB_DIR", "/tmp/punch-test")
	t.Setenv("PUNCH_DB_FILENAME", "other.db")
	t.Setenv("PUNCH_DB_POOL_SIZE", "8")
	t.Setenv("PUNCH_DB_BUSY_TIMEOUT", "2s")
	t.Setenv("PUNCH_DB_DIR_PERMISSIONS", "0700")
	t.Setenv("PUNCH_SYNC_BASE_URL", "http://timesync.example:9999")
	t.Setenv("PUNCH_AUTH_API_KEY", "key-123")
	t.Setenv("PUNCH_TIMER_FOCUS", "50m")
	t.Setenv("PUNCH_TIMER_BREAK", "5m")
	t.Setenv("PUNCH_APP_TIMEOUT", "30s")
	t.Setenv("PUNCH_APP_VERBOSE", "true")
	t.Setenv("PUNCH_SERVER_LISTEN_ADDR", "0.0.0.0:7070")

	cfg := NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		t.Fatalf("LoadFromEnvironment() error = %v", err)
	}

	if cfg.Database.Dir != "/tmp/punch-test" {
		t.Errorf("Database.Dir = %q", cfg.Database.Dir)
	}
	if cfg.Database.Filename != "other.db" {
		t.Errorf("Database.Filename = %q", cfg.Database.Filename)
	}
	if cfg.Database.PoolSize != 8 {
		t.Errorf("Database.PoolSize = %d, want 8", cfg.Database.PoolSize)
	}
	if cfg.Database.BusyTimeout != 2*time.Second {
		t.Errorf("Database.BusyTimeout = %v, want 2s", cfg.Database.BusyTimeout)
	}
	if cfg.Database.DirPermissions != 0700 {
		t.Errorf("Database.DirPermissions = %o, want 0700", cfg.Database.DirPermissions)
	}
	if cfg.Sync.BaseURL != "http://timesync.example:9999" {
		t.Errorf("Sync.BaseURL = %q", cfg.Sync.BaseURL)
	}
	if cfg.Auth.APIKey != "key-123" {
		t.Errorf("Auth.APIKey = %q", cfg.Auth.APIKey)
	}
	if cfg.Timer.Focus != 50*time.Minute {
		t.Errorf("Timer.Focus = %v, want 50m", cfg.Timer.Focus)
	}
	if cfg.Timer.Break != 5*time.Minute {
		t.Errorf("Timer.Break = %v, want 5m", cfg.Timer.Break)
	}
	if cfg.Application.Timeout != 30*time.Second {
		t.Errorf("Application.Timeout = %v, want 30s", cfg.Application.Timeout)
	}
	if !cfg.Application.Verbose {
		t.Error("Application.Verbose = false, want true")
	}
	if cfg.Server.ListenAddr != "0.0.0.0:7070" {
		t.Errorf("Server.ListenAddr = %q", cfg.Server.ListenAddr)
	}
}

func TestLoadFromEnvironment_KeepsDefaultsOnBadValues(t *testing.T) {
	t.Setenv("PUNCH_DB_POOL_SIZE", "lots")
	t.Setenv("PUNCH_TIMER_FOCUS", "soon")
	t.Setenv("PUNCH_APP_VERBOSE", "kinda")

	cfg := NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		t.Fatalf("LoadFromEnvironment() error = %v", err)
	}

	if cfg.Database.PoolSize != 4 {
		t.Errorf("Database.PoolSize = %d, want default 4", cfg.Database.PoolSize)
	}
	if cfg.Timer.Focus != 90*time.Minute {
		t.Errorf("Timer.Focus = %v, want default 90m", cfg.Timer.Focus)
	}
	if cfg.Application.Verbose {
		t.Error("Application.Verbose = true, want default false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"empty database dir", func(c *Config) { c.Database.Dir = "" }, "database.dir"},
		{"empty database filename", func(c *Config) { c.Database.Filename = "" }, "database.filename"},
		{"zero pool size", func(c *Config) { c.Database.PoolSize = 0 }, "database.pool_size"},
		{"zero busy timeout", func(c *Config) { c.Database.BusyTimeout = 0 }, "database.busy_timeout"},
		{"relative base url", func(c *Config) { c.Sync.BaseURL = "localhost:8080/time" }, "sync.base_url"},
		{"unparseable base url", func(c *Config) { c.Sync.BaseURL = "://bad" }, "sync.base_url"},
		{"zero focus", func(c *Config) { c.Timer.Focus = 0 }, "timer.focus"},
		{"negative break", func(c *Config) { c.Timer.Break = -time.Minute }, "timer.break"},
		{"zero app timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
		{"empty listen addr", func(c *Config) { c.Server.ListenAddr = "" }, "server.listen_addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() returned %T, want *ConfigError", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("ConfigError.Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestGetDatabasePath(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.Dir = "/var/lib/punchclock"
	cfg.Database.Filename = "punchclock.db"

	want := filepath.Join("/var/lib/punchclock", "punchclock.db")
	if got := cfg.GetDatabasePath(); got != want {
		t.Errorf("GetDatabasePath() = %q, want %q", got, want)
	}
}

func TestLoader_Load(t *testing.T) {
	t.Setenv("PUNCH_DB_DIR", t.TempDir())

	cfg, err := NewLoader().Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load() returned nil config")
	}
}

func TestLoader_LoadRejectsInvalidEnvironment(t *testing.T) {
	t.Setenv("PUNCH_SYNC_BASE_URL", "not-absolute")

	if _, err := NewLoader().Load(); err == nil {
		t.Fatal("Load() should fail on a relative sync base URL")
	}
}

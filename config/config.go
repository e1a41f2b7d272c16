package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"equipment-maintenance-backend/internal/model"
)

// Config represents the overall application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Cache       CacheConfig       `yaml:"cache"`
	Sync        SyncConfig        `yaml:"sync"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
	Push        PushConfig        `yaml:"push"`
	WorkerPool  WorkerPoolConfig  `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RequestIPHeader string  `yaml:"request_ip_header"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the remote store connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// CacheConfig holds the local durable cache configuration.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// SyncConfig bounds the best-effort remote replication.
type SyncConfig struct {
	RetryAttempts       int           `yaml:"retry_attempts"`
	RetryBackoffSeconds int           `yaml:"retry_backoff_seconds"`
	RetryBackoff        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// MaintenanceConfig carries site-wide schedule policy.
type MaintenanceConfig struct {
	// IntervalOverrides replaces the built-in default interval for an
	// equipment type, keyed by type name.
	IntervalOverrides map[string]model.IntervalSpec `yaml:"interval_overrides"`
}

// Overrides returns the interval overrides keyed by equipment type.
func (m MaintenanceConfig) Overrides() map[model.EquipmentType]model.IntervalSpec {
	if len(m.IntervalOverrides) == 0 {
		return nil
	}
	out := make(map[model.EquipmentType]model.IntervalSpec, len(m.IntervalOverrides))
	for k, v := range m.IntervalOverrides {
		out[model.EquipmentType(k)] = v
	}
	return out
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Cache.Path == "" {
		cfg.Cache.Path = "./dashboard_cache.db"
	}

	if cfg.Sync.RetryAttempts <= 0 {
		cfg.Sync.RetryAttempts = 3
	}
	if cfg.Sync.RetryBackoffSeconds <= 0 {
		cfg.Sync.RetryBackoffSeconds = 5
	}
	cfg.Sync.RetryBackoff = time.Duration(cfg.Sync.RetryBackoffSeconds) * time.Second

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}

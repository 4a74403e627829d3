package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// StorageDriver selects Mongo + Redis, or in-process stores for local runs.
	StorageDriver string `env:"STORAGE_DRIVER, default=mongo"`

	Session   SessionConfig
	Auth      AuthConfig
	Access    AccessConfig
	Dashboard DashboardConfig
	Mongo     MongoConfig
	Redis     RedisConfig
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET, default=fallback_secret"`
	TTL    time.Duration `env:"SESSION_TTL,    default=24h"`
}

type AuthConfig struct {
	BcryptCost   int `env:"BCRYPT_COST,        default=10"`
	EventWorkers int `env:"AUTH_EVENT_WORKERS, default=4"`
}

// AccessConfig lists path patterns (path.Match syntax) that need a session,
// and the subset that additionally needs the Manager role.
type AccessConfig struct {
	ProtectedPaths []string `env:"PROTECTED_PATHS, default=/dashboard,/products,/products/*"`
	ManagerPaths   []string `env:"MANAGER_PATHS,   default=/dashboard"`
}

type DashboardConfig struct {
	// Timeout bounds the aggregation fan-out; zero disables it.
	Timeout time.Duration `env:"DASHBOARD_TIMEOUT, default=0s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=inventory"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment reports whether the service runs locally; the session
// cookie drops its Secure flag only there.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if cfg.StorageDriver != StorageMongo && cfg.StorageDriver != StorageMemory {
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	return &cfg, nil
}

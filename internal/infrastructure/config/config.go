package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	ExportDir string `env:"EXPORT_DIR, default=exports"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Bootstrap BootstrapConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=quarry_ops"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// BootstrapConfig controls the first-start administrator account. The
// defaults reproduce the legacy deployment's well-known credential; any real
// installation should override BOOTSTRAP_ADMIN_PASSWORD, and startup logs a
// loud warning while the default is in effect.
type BootstrapConfig struct {
	AdminUsername string `env:"BOOTSTRAP_ADMIN_USERNAME, default=Admin"`
	AdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD, default=ad_01"`
}

// DefaultAdminPassword reports whether the well-known bootstrap password is
// still configured.
func (b BootstrapConfig) DefaultAdminPassword() bool {
	return b.AdminPassword == "ad_01"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

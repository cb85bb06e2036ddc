package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Store backends.
const (
	StoreRedisMongo = "redis"
	StoreBadger     = "badger"
)

type Config struct {
	ServerPort        string `mapstructure:"SERVER_PORT"`
	RedisUrl          string `mapstructure:"REDIS_URL"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	MongoUri          string `mapstructure:"MONGO_URI"`
	MongoDatabase     string `mapstructure:"MONGO_DATABASE"`
	IsLocalCors       bool   `mapstructure:"LOCAL_CORS"`
	SessionTTLMinutes int    `mapstructure:"SESSION_TTL_MINUTES"`
	ArchivePageLimit  int    `mapstructure:"ARCHIVE_PAGE_LIMIT"`
	StoreBackend      string `mapstructure:"STORE_BACKEND"`
	BadgerDir         string `mapstructure:"BADGER_DIR"`
}

// SessionTTL is how long an untouched live game stays in Redis.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// Setup reads cfgPath (a .env style file) and lets environment variables
// override it. A missing file is not an error.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("SERVER_PORT", ":8080")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "nogo")
	v.SetDefault("LOCAL_CORS", false)
	v.SetDefault("SESSION_TTL_MINUTES", 720)
	v.SetDefault("ARCHIVE_PAGE_LIMIT", 20)
	v.SetDefault("STORE_BACKEND", StoreRedisMongo)
	v.SetDefault("BADGER_DIR", "data/nogo")
	v.AutomaticEnv()

	v.SetConfigFile(cfgPath)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.StoreBackend != StoreRedisMongo && cfg.StoreBackend != StoreBadger {
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return &cfg, nil
}

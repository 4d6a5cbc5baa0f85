// Package config loads the albumgrid configuration file.
//
// The file is TOML. Before decoding, a .env file in the working directory is
// loaded into the environment (if present) and ${VAR} references in the file
// are expanded, so secrets such as the Redis password can live outside the
// file:
//
//	[layout]
//	width_unit = 1000
//	unbalanced_penalty = 1.2
//
//	[album]
//	max_group_size = 10
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	redis_password = "${REDIS_PASSWORD}"
//
//	[server]
//	addr = ":8080"
//
// Keys that are missing keep the values of [Default].
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/albumgrid/pkg/album"
	"github.com/matzehuels/albumgrid/pkg/cache"
	"github.com/matzehuels/albumgrid/pkg/errors"
	"github.com/matzehuels/albumgrid/pkg/grid"
)

// Cache backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config is the decoded configuration file.
type Config struct {
	Layout grid.Params  `toml:"layout"`
	Album  AlbumConfig  `toml:"album"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

type AlbumConfig struct {
	MaxGroupSize int `toml:"max_group_size"`
}

type CacheConfig struct {
	Backend string        `toml:"backend"`
	Dir     string        `toml:"dir"` // empty: the XDG cache directory
	TTL     time.Duration `toml:"ttl"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Layout: grid.DefaultParams(),
		Album:  AlbumConfig{MaxGroupSize: album.DefaultMaxGroupSize},
		Cache: CacheConfig{
			Backend:     BackendFile,
			TTL:         cache.TTLLayout,
			RedisAddr:   "localhost:6379",
			RedisPrefix: "albumgrid:",
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads the configuration file at path. An empty path yields
// [Default] after loading .env.
func Load(path string) (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(os.ExpandEnv(string(raw)))
}

// Parse decodes a TOML document on top of [Default] and validates it.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	if err := c.Layout.Validate(); err != nil {
		return err
	}
	if c.Album.MaxGroupSize < 1 || c.Album.MaxGroupSize > album.DefaultMaxGroupSize {
		return errors.New(errors.ErrCodeInvalidConfig, "album.max_group_size must be within 1..%d", album.DefaultMaxGroupSize)
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr is required")
	}
	return nil
}

func (c CacheConfig) Validate() error {
	switch c.Backend {
	case BackendFile, BackendMemory, BackendNone:
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
		if c.RedisDB < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_db must not be negative")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache.backend %q (want file, memory, redis or none)", c.Backend)
	}
	if c.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}
	return nil
}

// Redis returns the connection settings for [cache.NewRedisCache].
func (c CacheConfig) Redis() cache.RedisConfig {
	return cache.RedisConfig{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
		Prefix:   c.RedisPrefix,
	}
}

// Package config loads xuuid settings from XUUID_* environment variables
// with command-line flag overrides.
package config

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/Lzww0608/xuuid/store"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "XUUID_"

// Node source names accepted by Config.Node. Any other value is parsed as a
// MAC address.
const (
	NodeHardware = "hardware"
	NodeRandom   = "random"
	NodeNone     = "none"
	NodeZK       = "zk"
)

var ErrInvalidConfig = errors.New("invalid config")

// ZooKeeper addresses the ensemble used by the zk node source.
type ZooKeeper struct {
	Servers []string      `env:"SERVERS" envSeparator:","`
	Root    string        `env:"ROOT" envDefault:"/xuuid"`
	Service string        `env:"SERVICE" envDefault:"default"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
}

// Config holds the process configuration.
type Config struct {
	// Seed makes generation reproducible when set; empty means entropy.
	Seed      string `env:"SEED"`
	Node      string `env:"NODE" envDefault:"hardware"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	ZooKeeper ZooKeeper    `envPrefix:"ZK_"`
	Store     store.Config `envPrefix:"STORE_"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RegisterFlags binds the global flags to cfg, keeping the loaded values as
// defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Seed, "seed", c.Seed, "fixed engine seed (default: entropy)")
	fs.StringVar(&c.Node, "node", c.Node, "node source: hardware, random, none, zk or a MAC address")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format: console or json")
	fs.StringVar((*string)(&c.Store.Driver), "store-driver", string(c.Store.Driver), "registry driver: sqlite or mysql")
	fs.StringVar(&c.Store.DSN, "store-dsn", c.Store.DSN, "registry data source name")
}

// SeedValue returns the configured seed and whether one is set.
func (c Config) SeedValue() (uint64, bool, error) {
	if c.Seed == "" {
		return 0, false, nil
	}
	seed, err := strconv.ParseUint(c.Seed, 0, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: seed %q: %v", ErrInvalidConfig, c.Seed, err)
	}
	return seed, true, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, _, err := c.SeedValue(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat)
	}
	switch c.Store.Driver {
	case store.DriverSQLite, store.DriverMySQL:
	default:
		return fmt.Errorf("%w: store driver %q", ErrInvalidConfig, c.Store.Driver)
	}
	if c.Node == NodeZK && len(c.ZooKeeper.Servers) == 0 {
		return fmt.Errorf("%w: node source zk needs %sZK_SERVERS", ErrInvalidConfig, EnvPrefix)
	}
	return nil
}

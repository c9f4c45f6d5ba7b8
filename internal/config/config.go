package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/constants"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/engine"
	"github.com/rushikesh-shinde-pyd/PokemonBattle/internal/ids"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address" yaml:"address"`
	} `json:"server" yaml:"server"`
	Catalog *struct {
		Path           string  `json:"path" yaml:"path"`
		FuzzyThreshold float64 `json:"fuzzy_threshold" yaml:"fuzzy_threshold"`
		MaxEntities    uint64  `json:"max_entities" yaml:"max_entities"`
	} `json:"catalog" yaml:"catalog"`
	Battle *struct {
		// RoundDelay uses Go duration syntax, e.g. "3s" or "1500ms".
		RoundDelay    string `json:"round_delay" yaml:"round_delay"`
		MaxConcurrent int    `json:"max_concurrent" yaml:"max_concurrent"`
	} `json:"battle" yaml:"battle"`
	Store *struct {
		Driver string `json:"driver" yaml:"driver"`
		DSN    string `json:"dsn" yaml:"dsn"`
	} `json:"store" yaml:"store"`
	Listing *struct {
		MaxPerPage int    `json:"max_per_page" yaml:"max_per_page"`
		CacheTTL   string `json:"cache_ttl" yaml:"cache_ttl"`
		CacheSize  int    `json:"cache_size" yaml:"cache_size"`
	} `json:"listing" yaml:"listing"`
	Log *struct {
		File       string `json:"file" yaml:"file"`
		MaxSizeMB  int    `json:"max_size_mb" yaml:"max_size_mb"`
		MaxBackups int    `json:"max_backups" yaml:"max_backups"`
		Debug      bool   `json:"debug" yaml:"debug"`
	} `json:"log" yaml:"log"`
}

// LoadedConfig is the effective service configuration. Every field can be
// overridden from the environment.
type LoadedConfig struct {
	ServerAddress string `env:"POKEMON_ADDR"`

	CatalogPath    string  `env:"POKEMON_CATALOG"`
	FuzzyThreshold float64 `env:"POKEMON_FUZZY_THRESHOLD"`
	MaxEntities    uint64  `env:"POKEMON_MAX_ENTITIES"`

	RoundDelay           time.Duration `env:"POKEMON_ROUND_DELAY"`
	MaxConcurrentBattles int           `env:"POKEMON_MAX_CONCURRENT"`

	StoreDriver string `env:"POKEMON_STORE"`
	StoreDSN    string `env:"POKEMON_DB"`

	MaxPerPage int           `env:"POKEMON_MAX_PER_PAGE"`
	CacheTTL   time.Duration `env:"POKEMON_CACHE_TTL"`
	CacheSize  int           `env:"POKEMON_CACHE_SIZE"`

	// LogFile rotates once it reaches LogMaxSizeMB, keeping LogMaxBackups
	// old files.
	LogFile       string `env:"POKEMON_LOG_FILE"`
	LogMaxSizeMB  int    `env:"POKEMON_LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `env:"POKEMON_LOG_MAX_BACKUPS"`
	Debug         bool   `env:"POKEMON_DEBUG"`
}

// Default returns the built-in configuration.
func Default() *LoadedConfig {
	return &LoadedConfig{
		ServerAddress:  constants.DefaultServerAddress,
		CatalogPath:    constants.DefaultCatalogPath,
		FuzzyThreshold: constants.DefaultFuzzyThreshold,
		MaxEntities:    ids.DefaultMax,
		RoundDelay:     engine.DefaultRoundDelay,
		StoreDriver:    constants.DefaultStoreDriver,
		MaxPerPage:     constants.DefaultMaxPerPage,
		CacheTTL:       constants.DefaultCacheTTL,
		CacheSize:      constants.DefaultCacheSize,
		LogMaxSizeMB:   constants.DefaultLogMaxSizeMB,
		LogMaxBackups:  constants.DefaultLogMaxBackups,
	}
}

// LoadConfig reads the JSON or YAML file at path (chosen by extension),
// applies environment overrides and validates the result. A missing file is
// reported with an error wrapping fs.ErrNotExist.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &rc)
	default:
		err = json.Unmarshal(b, &rc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := Default()
	if err := rc.apply(cfg); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return finish(cfg)
}

// FromEnv builds the configuration from defaults and environment overrides
// only.
func FromEnv() (*LoadedConfig, error) {
	return finish(Default())
}

func finish(cfg *LoadedConfig) (*LoadedConfig, error) {
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (rc *rawConfig) apply(cfg *LoadedConfig) error {
	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if c := rc.Catalog; c != nil {
		if c.Path != "" {
			cfg.CatalogPath = c.Path
		}
		if c.FuzzyThreshold != 0 {
			cfg.FuzzyThreshold = c.FuzzyThreshold
		}
		if c.MaxEntities != 0 {
			cfg.MaxEntities = c.MaxEntities
		}
	}
	if b := rc.Battle; b != nil {
		if b.RoundDelay != "" {
			d, err := time.ParseDuration(b.RoundDelay)
			if err != nil {
				return fmt.Errorf("battle.round_delay: %w", err)
			}
			cfg.RoundDelay = d
		}
		cfg.MaxConcurrentBattles = b.MaxConcurrent
	}
	if s := rc.Store; s != nil {
		if s.Driver != "" {
			cfg.StoreDriver = strings.ToLower(s.Driver)
		}
		cfg.StoreDSN = s.DSN
	}
	if l := rc.Listing; l != nil {
		if l.MaxPerPage != 0 {
			cfg.MaxPerPage = l.MaxPerPage
		}
		if l.CacheTTL != "" {
			d, err := time.ParseDuration(l.CacheTTL)
			if err != nil {
				return fmt.Errorf("listing.cache_ttl: %w", err)
			}
			cfg.CacheTTL = d
		}
		if l.CacheSize != 0 {
			cfg.CacheSize = l.CacheSize
		}
	}
	if l := rc.Log; l != nil {
		cfg.LogFile = l.File
		if l.MaxSizeMB != 0 {
			cfg.LogMaxSizeMB = l.MaxSizeMB
		}
		if l.MaxBackups != 0 {
			cfg.LogMaxBackups = l.MaxBackups
		}
		cfg.Debug = l.Debug
	}
	return nil
}

// Validate reports the first out-of-range setting.
func (c *LoadedConfig) Validate() error {
	switch {
	case c.ServerAddress == "":
		return fmt.Errorf("server address must not be empty")
	case c.CatalogPath == "":
		return fmt.Errorf("catalog path must not be empty")
	case c.FuzzyThreshold <= 0 || c.FuzzyThreshold > 1:
		return fmt.Errorf("fuzzy threshold %v must be in (0, 1]", c.FuzzyThreshold)
	case c.MaxEntities == 0:
		return fmt.Errorf("max entities must be positive")
	case c.RoundDelay <= 0:
		return fmt.Errorf("round delay %v must be positive", c.RoundDelay)
	case c.MaxConcurrentBattles < 0:
		return fmt.Errorf("max concurrent battles must not be negative")
	case c.StoreDriver != constants.DefaultStoreDriver && c.StoreDriver != constants.StoreDriverSQLite:
		return fmt.Errorf("unknown store driver %q (want %q or %q)", c.StoreDriver, constants.DefaultStoreDriver, constants.StoreDriverSQLite)
	case c.MaxPerPage <= 0:
		return fmt.Errorf("max per page must be positive")
	case c.CacheTTL < 0:
		return fmt.Errorf("cache ttl must not be negative")
	case c.CacheSize <= 0:
		return fmt.Errorf("cache size must be positive")
	case c.LogMaxSizeMB <= 0:
		return fmt.Errorf("log max size must be positive")
	case c.LogMaxBackups < 0:
		return fmt.Errorf("log max backups must not be negative")
	}
	return nil
}

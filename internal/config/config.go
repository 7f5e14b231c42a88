// Package config loads the evgb configuration from a YAML file and EVGB_
// environment variables, and implements the generator-list and tune
// selection.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "evgb.yaml"

const envPrefix = "EVGB_"

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	Archive   ArchiveConfig   `koanf:"archive"`
	Generator GeneratorConfig `koanf:"generator"`
	Species   SpeciesConfig   `koanf:"species"`
	Pipeline  PipelineConfig  `koanf:"pipeline"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

type ServerConfig struct {
	Port           int           `koanf:"port"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
	// APIKeys maps a key name to the hex SHA-256 of the key. When set, writes
	// require one of the keys.
	APIKeys map[string]string `koanf:"api_keys"`
}

type StorageConfig struct {
	Driver    string `koanf:"driver"` // sqlite, postgres, memory
	DSN       string `koanf:"dsn"`    // Data source name / connection string
	CacheSize int    `koanf:"cache_size"`
}

// ArchiveConfig configures the optional object-store copy of every event.
type ArchiveConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Endpoint  string `koanf:"endpoint"`
	Region    string `koanf:"region"`
	Bucket    string `koanf:"bucket"`
	Prefix    string `koanf:"prefix"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	UseSSL    bool   `koanf:"use_ssl"`
}

// GeneratorConfig describes the generator run the events come from.
type GeneratorConfig struct {
	Version            string            `koanf:"version"`
	Tune               string            `koanf:"tune"`                 // may be "$VAR" or "${VAR}"
	EventGeneratorList string            `koanf:"event_generator_list"` // may be "$VAR" or "${VAR}"
	AddVertexTime      bool              `koanf:"add_vertex_time"`
	GlobalTimeOffsetNs float64           `koanf:"global_time_offset_ns"`
	RandomTimeOffsetNs float64           `koanf:"random_time_offset_ns"`
	Config             map[string]string `koanf:"config"`
}

type SpeciesConfig struct {
	Path string `koanf:"path"` // optional YAML overlay on the built-in table
}

type PipelineConfig struct {
	Workers int `koanf:"workers"`
}

type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	ServiceName string `koanf:"service_name"`
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

var defaults = map[string]any{
	"server.port":            8080,
	"server.request_timeout": "60s",
	"storage.driver":         "sqlite",
	"storage.dsn":            "evgb.db",
	"storage.cache_size":     1024,
	"archive.prefix":         "events",
	"pipeline.workers":       4,
	"telemetry.service_name": "evgb",
}

// Load reads path (DefaultPath when empty), then EVGB_ environment
// variables, which override the file. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	// EVGB_STORAGE__CACHE_SIZE -> storage.cache_size
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	for key, v := range defaults {
		if !k.Exists(key) {
			k.Set(key, v)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Storage.DSN = substituteEnvVars(cfg.Storage.DSN)
	cfg.Archive.Endpoint = substituteEnvVars(cfg.Archive.Endpoint)
	cfg.Archive.AccessKey = substituteEnvVars(cfg.Archive.AccessKey)
	cfg.Archive.SecretKey = substituteEnvVars(cfg.Archive.SecretKey)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch c.Storage.Driver {
	case "sqlite", "postgres", "memory":
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not one of sqlite, postgres, memory", c.Storage.Driver))
	}
	if c.Storage.CacheSize < 0 {
		errs = append(errs, errors.New("storage.cache_size must not be negative"))
	}
	if c.Archive.Enabled && c.Archive.Bucket == "" {
		errs = append(errs, errors.New("archive.bucket is required when the archive is enabled"))
	}
	if c.Generator.RandomTimeOffsetNs < 0 {
		errs = append(errs, errors.New("generator.random_time_offset_ns must not be negative"))
	}
	if c.Pipeline.Workers < 1 {
		errs = append(errs, errors.New("pipeline.workers must be at least 1"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// substituteEnvVars replaces every ${VAR} in s; unset variables become empty.
func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

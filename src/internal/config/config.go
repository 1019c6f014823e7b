// Package config loads the run configuration for citebook.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// CITEBOOK_* environment variables (a .env file in the working directory is
// read first when present). Command-line flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"citebook/src/internal/debugdump"
	"citebook/src/internal/doi"
	"citebook/src/internal/googlebooks"
	"citebook/src/internal/httpx"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CITEBOOK_"

// Config is threaded through a single run.
type Config struct {
	// Debug dumps the raw metadata to DebugFile and enables debug logging.
	Debug bool `yaml:"debug"`
	// DebugFile is where the raw metadata is written in debug mode.
	DebugFile string `yaml:"debug_file"`
	// GoogleBooksEndpoint is the volumes collection URL.
	GoogleBooksEndpoint string `yaml:"google_books_endpoint"`
	// DOIResolver is the base URL used for DOI content negotiation.
	DOIResolver string `yaml:"doi_resolver"`
	// UserAgent is sent with every request.
	UserAgent string `yaml:"user_agent"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DebugFile:           debugdump.DefaultPath,
		GoogleBooksEndpoint: googlebooks.DefaultEndpoint,
		DOIResolver:         doi.DefaultResolver,
		UserAgent:           httpx.DefaultUA,
		LogLevel:            "warn",
		LogFormat:           "console",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty; falls back to $CITEBOOK_CONFIG) and the environment.
func Load(path string) (Config, error) {
	_ = godotenv.Load()
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPrefix + "CONFIG")
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: file not found: %s", path)
		}
		return fmt.Errorf("config: %w", err)
	}
	var fileCfg Config
	if err := yaml.Unmarshal(b, &fileCfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	c.merge(fileCfg)
	return nil
}

// merge copies the non-zero fields of o over c.
func (c *Config) merge(o Config) {
	if o.Debug {
		c.Debug = true
	}
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&c.DebugFile, o.DebugFile)
	set(&c.GoogleBooksEndpoint, o.GoogleBooksEndpoint)
	set(&c.DOIResolver, o.DOIResolver)
	set(&c.UserAgent, o.UserAgent)
	set(&c.LogLevel, o.LogLevel)
	set(&c.LogFormat, o.LogFormat)
}

func (c *Config) mergeEnv() error {
	if v := getEnv("DEBUG", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sDEBUG: %w", EnvPrefix, err)
		}
		c.Debug = b
	}
	c.DebugFile = getEnv("DEBUG_FILE", c.DebugFile)
	c.GoogleBooksEndpoint = getEnv("GOOGLE_BOOKS_ENDPOINT", c.GoogleBooksEndpoint)
	c.DOIResolver = getEnv("DOI_RESOLVER", c.DOIResolver)
	c.UserAgent = getEnv("USER_AGENT", c.UserAgent)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	return nil
}

// Validate checks values that would otherwise fail later with a less useful error.
func (c Config) Validate() error {
	for name, u := range map[string]string{"google_books_endpoint": c.GoogleBooksEndpoint, "doi_resolver": c.DOIResolver} {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("config: %s must be an http(s) URL, got %q", name, u)
		}
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("config: log_format must be console or json, got %q", c.LogFormat)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(EnvPrefix + key)); v != "" {
		return v
	}
	return def
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr             string `yaml:"addr"`
	Storage          string `yaml:"storage"`
	DatabaseURL      string `yaml:"databaseUrl"`
	EmbeddedPostgres bool   `yaml:"embeddedPostgres"`
	EmbeddedPort     uint32 `yaml:"embeddedPort"`
	JWTSecret        string `yaml:"jwtSecret"`
	LogLevel         string `yaml:"logLevel"`
	CORSAllowOrigins string `yaml:"corsAllowOrigins"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:             ":8080",
		Storage:          StoragePostgres,
		EmbeddedPort:     5433,
		LogLevel:         "info",
		CORSAllowOrigins: "*",
	}
}

// Load reads configuration in three layers: defaults, the YAML file named by
// BASKET_CONFIG (if any), then environment variables. A .env file in the
// working directory is loaded into the environment first.
func Load() (Config, error) {
	cfg, err := Read()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Read is Load without validation, for tools that only need a few keys.
func Read() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("BASKET_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Addr = getenv("BASKET_ADDR", c.Addr)
	c.Storage = strings.ToLower(getenv("BASKET_STORAGE", c.Storage))
	c.DatabaseURL = getenv("DATABASE_URL", c.DatabaseURL)
	c.JWTSecret = getenv("JWT_SECRET", c.JWTSecret)
	c.LogLevel = strings.ToLower(getenv("LOG_LEVEL", c.LogLevel))
	c.CORSAllowOrigins = getenv("CORS_ALLOW_ORIGINS", c.CORSAllowOrigins)

	if v := os.Getenv("BASKET_EMBEDDED_PG"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("BASKET_EMBEDDED_PG: %w", err)
		}
		c.EmbeddedPostgres = b
	}
	if v := os.Getenv("BASKET_EMBEDDED_PG_PORT"); v != "" {
		port, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("BASKET_EMBEDDED_PG_PORT: %w", err)
		}
		c.EmbeddedPort = uint32(port)
	}
	return nil
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" && !c.EmbeddedPostgres {
			return fmt.Errorf("DATABASE_URL is not set")
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.Addr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

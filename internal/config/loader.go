package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MacMbizo/disciplineApp-sub001/internal/tracker"
)

// Loader resolves the runtime configuration in three layers: an optional
// YAML file, built-in defaults for anything the file left unset, and
// prefixed environment variables that override both.
type Loader struct {
	configPath string
	envPrefix  string
}

// NewLoader creates a new configuration loader
func NewLoader(configPath, envPrefix string) *Loader {
	return &Loader{
		configPath: configPath,
		envPrefix:  envPrefix,
	}
}

// Load resolves and validates the configuration
func (l *Loader) Load() (*tracker.Config, error) {
	config := &tracker.Config{}

	if l.configPath != "" {
		if err := l.loadFromYAML(config); err != nil {
			return nil, fmt.Errorf("failed to load YAML config: %w", err)
		}
	}

	l.applyDefaults(config)
	l.applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromYAML reads the config file when it exists; a missing file is not
// an error
func (l *Loader) loadFromYAML(config *tracker.Config) error {
	if _, err := os.Stat(l.configPath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (l *Loader) applyDefaults(config *tracker.Config) {
	srv := &config.Server
	if srv.Port == "" && srv.Host == "" {
		srv.Enabled = true
	}
	if srv.Port == "" {
		srv.Port = "8080"
	}
	if srv.Host == "" {
		srv.Host = "0.0.0.0"
	}
	if srv.ReadTimeout == 0 {
		srv.ReadTimeout = 10 * time.Second
	}
	if srv.WriteTimeout == 0 {
		srv.WriteTimeout = 10 * time.Second
	}
	if srv.IdleTimeout == 0 {
		srv.IdleTimeout = 120 * time.Second
	}
	if srv.ShutdownTimeout == 0 {
		srv.ShutdownTimeout = 30 * time.Second
	}
	if srv.MaxHeaderBytes == 0 {
		srv.MaxHeaderBytes = 1 << 20
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "json"
	}

	c := &config.Cache
	if c.MaxKeys == 0 {
		c.MaxKeys = 1000
	}
	if c.CleanupInterval == 0 {
		c.CleanupInterval = 10 * time.Minute
	}
	if c.DefaultTTL == 0 {
		c.DefaultTTL = time.Hour
	}
}

func (l *Loader) applyEnvOverrides(config *tracker.Config) {
	l.envString("SERVER_PORT", &config.Server.Port)
	l.envString("SERVER_HOST", &config.Server.Host)
	l.envBool("SERVER_ENABLED", &config.Server.Enabled)
	l.envDuration("SERVER_READ_TIMEOUT", &config.Server.ReadTimeout)
	l.envDuration("SERVER_WRITE_TIMEOUT", &config.Server.WriteTimeout)

	l.envString("LOG_LEVEL", &config.Logging.Level)
	l.envString("LOG_FORMAT", &config.Logging.Format)

	if v := l.lookup("CACHE_TYPE"); v != "" {
		config.Cache.Type = tracker.ParseCacheType(v)
	}
	l.envString("REDIS_URL", &config.Cache.RedisURL)
	l.envString("REDIS_PASSWORD", &config.Cache.RedisPassword)
	l.envInt("REDIS_DB", &config.Cache.RedisDB)
	l.envDuration("CACHE_DEFAULT_TTL", &config.Cache.DefaultTTL)
}

func (l *Loader) lookup(key string) string {
	return os.Getenv(l.envPrefix + "_" + key)
}

func (l *Loader) envString(key string, dst *string) {
	if v := l.lookup(key); v != "" {
		*dst = v
	}
}

func (l *Loader) envBool(key string, dst *bool) {
	if v := l.lookup(key); v != "" {
		*dst = strings.EqualFold(v, "true")
	}
}

func (l *Loader) envInt(key string, dst *int) {
	if v := l.lookup(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func (l *Loader) envDuration(key string, dst *time.Duration) {
	if v := l.lookup(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

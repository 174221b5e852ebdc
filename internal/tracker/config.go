package tracker

import (
	"strings"
	"time"
)

// Config represents the main configuration structure
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig represents the diagnostics HTTP server configuration
type ServerConfig struct {
	Enabled         bool          `yaml:"enabled" default:"true"`
	Port            string        `yaml:"port" default:"8080"`
	Host            string        `yaml:"host" default:"0.0.0.0"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" default:"1048576"` // 1MB
}

// CacheConfig represents document cache configuration
type CacheConfig struct {
	Type            CacheType     `yaml:"type" default:"memory"`
	RedisURL        string        `yaml:"redis_url"`
	RedisPassword   string        `yaml:"redis_password"`
	RedisDB         int           `yaml:"redis_db" default:"0"`
	MaxKeys         int           `yaml:"max_keys" default:"1000"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" default:"10m"`
	DefaultTTL      time.Duration `yaml:"default_ttl" default:"1h"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return ErrConfigurationError
	}

	return nil
}

// FirebaseConfig is the immutable set of backend addressing and identity
// parameters. It is loaded once at process start and never mutated.
type FirebaseConfig struct {
	APIKey            string `yaml:"api_key"`
	AuthDomain        string `yaml:"auth_domain"`
	ProjectID         string `yaml:"project_id"`
	StorageBucket     string `yaml:"storage_bucket"`
	MessagingSenderID string `yaml:"messaging_sender_id"`
	AppID             string `yaml:"app_id"`
	MeasurementID     string `yaml:"measurement_id"`
	CredentialsPath   string `yaml:"credentials_path"`
	CredentialsBase64 string `yaml:"credentials_base64"`
}

// Validate fails fast on a missing or placeholder project ID so that a
// never-replaced template config cannot reach the first remote call.
func (c *FirebaseConfig) Validate() error {
	if c.ProjectID == "" {
		return ErrMissingProjectID
	}
	if isPlaceholder(c.ProjectID) || isPlaceholder(c.APIKey) {
		return ErrConfigurationError
	}
	return nil
}

// isPlaceholder detects template values that were never replaced
func isPlaceholder(v string) bool {
	upper := strings.ToUpper(v)
	return strings.HasPrefix(upper, "YOUR_") || strings.Contains(upper, "CHANGEME")
}

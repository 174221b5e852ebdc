package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvConfigLoader implements tracker.ConfigLoader over environment variables
// with an optional YAML-sourced fallback map. The bootstrap reads the
// Firebase addressing parameters through it.
type EnvConfigLoader struct {
	envPrefix string
	yamlData  map[string]any
}

// NewEnvConfigLoader creates a new environment-based config loader
func NewEnvConfigLoader(envPrefix string, yamlData map[string]any) *EnvConfigLoader {
	if yamlData == nil {
		yamlData = make(map[string]any)
	}

	return &EnvConfigLoader{
		envPrefix: envPrefix,
		yamlData:  yamlData,
	}
}

// Get retrieves a configuration value by key. Environment variables win over
// YAML values.
func (e *EnvConfigLoader) Get(key string) (string, bool) {
	if value := os.Getenv(e.buildEnvKey(key)); value != "" {
		return value, true
	}

	if value := e.getFromYAML(key); value != "" {
		return value, true
	}

	return "", false
}

// GetWithDefault retrieves a configuration value with a default fallback
func (e *EnvConfigLoader) GetWithDefault(key, defaultValue string) string {
	if value, ok := e.Get(key); ok {
		return value
	}
	return defaultValue
}

// GetBool retrieves a boolean configuration value
func (e *EnvConfigLoader) GetBool(key string) (bool, bool) {
	value, ok := e.Get(key)
	if !ok {
		return false, false
	}

	parsed, err := strconv.ParseBool(strings.ToLower(value))
	if err != nil {
		return false, false
	}
	return parsed, true
}

// GetBoolWithDefault retrieves a boolean configuration value with default
func (e *EnvConfigLoader) GetBoolWithDefault(key string, defaultValue bool) bool {
	if value, ok := e.GetBool(key); ok {
		return value
	}
	return defaultValue
}

// GetInt retrieves an integer configuration value
func (e *EnvConfigLoader) GetInt(key string) (int, bool) {
	value, ok := e.Get(key)
	if !ok {
		return 0, false
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

// GetIntWithDefault retrieves an integer configuration value with default
func (e *EnvConfigLoader) GetIntWithDefault(key string, defaultValue int) int {
	if value, ok := e.GetInt(key); ok {
		return value
	}
	return defaultValue
}

// buildEnvKey converts a dotted key to an environment variable name,
// e.g. "firebase.project_id" -> "DISCIPLINE_FIREBASE_PROJECT_ID"
func (e *EnvConfigLoader) buildEnvKey(key string) string {
	envKey := strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
	if e.envPrefix == "" {
		return envKey
	}
	return e.envPrefix + "_" + envKey
}

// getFromYAML walks the dotted key through nested YAML maps
func (e *EnvConfigLoader) getFromYAML(key string) string {
	var current any = e.yamlData

	for _, part := range strings.Split(key, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return ""
		}
		current, ok = node[part]
		if !ok {
			return ""
		}
	}

	switch v := current.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case float64:
		return fmt.Sprintf("%v", v)
	default:
		return ""
	}
}

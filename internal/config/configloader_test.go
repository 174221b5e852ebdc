package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvConfigLoader_Get(t *testing.T) {
	t.Setenv("ENVTEST_FIREBASE_PROJECT_ID", "discipline-env")

	loader := NewEnvConfigLoader("ENVTEST", nil)

	value, ok := loader.Get("firebase.project_id")
	assert.True(t, ok)
	assert.Equal(t, "discipline-env", value)

	_, ok = loader.Get("firebase.api_key")
	assert.False(t, ok)
}

func TestEnvConfigLoader_NoPrefix(t *testing.T) {
	t.Setenv("FIREBASE_PROJECT_ID", "discipline-bare")

	loader := NewEnvConfigLoader("", nil)

	value, ok := loader.Get("firebase.project_id")
	assert.True(t, ok)
	assert.Equal(t, "discipline-bare", value)
}

func TestEnvConfigLoader_YAMLFallback(t *testing.T) {
	yamlData := map[string]any{
		"firebase": map[string]any{
			"project_id": "discipline-yaml",
			"sender_id":  1234567890,
			"enabled":    true,
		},
	}

	loader := NewEnvConfigLoader("ENVTEST", yamlData)

	value, ok := loader.Get("firebase.project_id")
	assert.True(t, ok)
	assert.Equal(t, "discipline-yaml", value)

	value, ok = loader.Get("firebase.sender_id")
	assert.True(t, ok)
	assert.Equal(t, "1234567890", value)

	value, ok = loader.Get("firebase.enabled")
	assert.True(t, ok)
	assert.Equal(t, "true", value)

	_, ok = loader.Get("firebase.missing")
	assert.False(t, ok)
	_, ok = loader.Get("firebase.project_id.nested")
	assert.False(t, ok)
}

func TestEnvConfigLoader_EnvWinsOverYAML(t *testing.T) {
	t.Setenv("ENVTEST_FIREBASE_PROJECT_ID", "from-env")

	yamlData := map[string]any{
		"firebase": map[string]any{"project_id": "from-yaml"},
	}
	loader := NewEnvConfigLoader("ENVTEST", yamlData)

	assert.Equal(t, "from-env", loader.GetWithDefault("firebase.project_id", "fallback"))
}

func TestEnvConfigLoader_GetWithDefault(t *testing.T) {
	loader := NewEnvConfigLoader("ENVTEST", nil)

	assert.Equal(t, "fallback", loader.GetWithDefault("firebase.api_key", "fallback"))
}

func TestEnvConfigLoader_GetBool(t *testing.T) {
	t.Setenv("ENVTEST_FEATURE_ENABLED", "TRUE")
	t.Setenv("ENVTEST_FEATURE_BROKEN", "not-a-bool")

	loader := NewEnvConfigLoader("ENVTEST", nil)

	value, ok := loader.GetBool("feature.enabled")
	assert.True(t, ok)
	assert.True(t, value)

	_, ok = loader.GetBool("feature.broken")
	assert.False(t, ok)

	assert.True(t, loader.GetBoolWithDefault("feature.missing", true))
	assert.False(t, loader.GetBoolWithDefault("feature.missing", false))
}

func TestEnvConfigLoader_GetInt(t *testing.T) {
	t.Setenv("ENVTEST_CACHE_MAX_KEYS", "500")
	t.Setenv("ENVTEST_CACHE_BROKEN", "not-an-int")

	loader := NewEnvConfigLoader("ENVTEST", nil)

	value, ok := loader.GetInt("cache.max_keys")
	assert.True(t, ok)
	assert.Equal(t, 500, value)

	_, ok = loader.GetInt("cache.broken")
	assert.False(t, ok)

	assert.Equal(t, 99, loader.GetIntWithDefault("cache.missing", 99))
}

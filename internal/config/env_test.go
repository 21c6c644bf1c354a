package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	env := LoadEnv()

	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, ":8081", env.APIAddr)
	assert.Equal(t, "http://localhost:8081", env.BackendURL)
	assert.Equal(t, 15*time.Second, env.GatewayTimeout)
	assert.Equal(t, "memory", env.SessionBackend)
	assert.Equal(t, 2*time.Hour, env.SessionTTL)
	assert.NotEmpty(t, env.CORSAllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOPONHUB_BACKEND_URL", "http://api.internal:9000/")
	t.Setenv("HOPONHUB_SESSION_BACKEND", "Redis")
	t.Setenv("HOPONHUB_GATEWAY_TIMEOUT", "3s")
	t.Setenv("HOPONHUB_CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("APP_ADDR", ":9090")

	env := LoadEnv()

	assert.Equal(t, "http://api.internal:9000", env.BackendURL)
	assert.Equal(t, "redis", env.SessionBackend)
	assert.Equal(t, 3*time.Second, env.GatewayTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, env.CORSAllowedOrigins)
	assert.Equal(t, ":9090", env.AppAddr)
}

func TestLoadEnvInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("HOPONHUB_SESSION_TTL", "forever")

	env := LoadEnv()

	assert.Equal(t, 2*time.Hour, env.SessionTTL)
}

package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Env struct {
	AppAddr string
	APIAddr string
	GinMode string

	BackendURL     string
	GatewayTimeout time.Duration

	SessionBackend string
	SessionSecret  string
	SessionTTL     time.Duration
	RedisURL       string

	DatabaseDSN string

	LogLevel  string
	LogFormat string

	CORSAllowedOrigins []string
}

// DefaultSessionSecret is the placeholder secret shipped in defaults. It is
// public and must not sign cookies in production.
const DefaultSessionSecret = "hope-on-hop-off-secret"

var defaults = map[string]any{
	"app_addr":             ":8080",
	"api_addr":             ":8081",
	"gin_mode":             "",
	"backend_url":          "http://localhost:8081",
	"gateway_timeout":      "15s",
	"session_backend":      "memory",
	"session_secret":       DefaultSessionSecret,
	"session_ttl":          "2h",
	"redis_url":            "redis://localhost:6379/0",
	"database_dsn":         "root:@tcp(127.0.0.1:3306)/hoponhub?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
	"log_level":            "info",
	"log_format":           "console",
	"cors_allowed_origins": "http://localhost:8080,http://127.0.0.1:8080",
}

// legacyKeys are read without the HOPONHUB_ prefix for compatibility with
// existing deployments.
var legacyKeys = map[string]string{
	"app_addr":  "APP_ADDR",
	"gin_mode":  "GIN_MODE",
	"redis_url": "REDIS_URL",
}

// LoadEnv reads HOPONHUB_* environment variables on top of defaults.
func LoadEnv() Env {
	return loadFrom(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("HOPONHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	for k, env := range legacyKeys {
		_ = v.BindEnv(k, "HOPONHUB_"+strings.ToUpper(k), env)
	}
	return v
}

func loadFrom(v *viper.Viper) Env {
	return Env{
		AppAddr:            strings.TrimSpace(v.GetString("app_addr")),
		APIAddr:            strings.TrimSpace(v.GetString("api_addr")),
		GinMode:            strings.TrimSpace(v.GetString("gin_mode")),
		BackendURL:         strings.TrimRight(strings.TrimSpace(v.GetString("backend_url")), "/"),
		GatewayTimeout:     durationOr(v, "gateway_timeout", 15*time.Second),
		SessionBackend:     strings.ToLower(strings.TrimSpace(v.GetString("session_backend"))),
		SessionSecret:      v.GetString("session_secret"),
		SessionTTL:         durationOr(v, "session_ttl", 2*time.Hour),
		RedisURL:           strings.TrimSpace(v.GetString("redis_url")),
		DatabaseDSN:        strings.TrimSpace(v.GetString("database_dsn")),
		LogLevel:           strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogFormat:          strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),
		CORSAllowedOrigins: splitList(v.GetString("cors_allowed_origins")),
	}
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d := v.GetDuration(key)
	if d <= 0 {
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

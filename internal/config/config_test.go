package config

import (
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "test-secret")
}

// unsetEnv clears keys for the duration of the test
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	unsetEnv(t, "SERVER_PORT", "JWT_EXPIRES_IN", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL", "DB_MAX_CONNS", "DB_QUERY_TIMEOUT")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, int32(5), cfg.Database.MaxConns)
	assert.Equal(t, 30*time.Second, cfg.Database.QueryTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRES_IN", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 90*time.Minute, cfg.JWT.ExpiresIn)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET is required")
}

func TestValidate_RejectsUnknownLogLevel(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Password: "x"},
		JWT:      JWTConfig{Secret: "x", ExpiresIn: time.Hour},
		Log:      LogConfig{Level: "loud"},
	}
	assert.ErrorContains(t, cfg.Validate(), "LOG_LEVEL")
}

func TestGetDSN_EscapesCredentials(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host:        "db",
		Port:        "5432",
		User:        "lib",
		Password:    "p@ss:word",
		Name:        "library",
		SSLMode:     "disable",
		ConnTimeout: 10 * time.Second,
	}}

	u, err := url.Parse(cfg.GetDSN())
	require.NoError(t, err)

	pass, _ := u.User.Password()
	assert.Equal(t, "p@ss:word", pass)
	assert.Equal(t, "db:5432", u.Host)
	assert.Equal(t, "/library", u.Path)
	assert.Equal(t, "10", u.Query().Get("connect_timeout"))
}

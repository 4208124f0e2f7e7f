package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/dashboard")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("EDIT_PASSWORD", "letmein")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "engineering", cfg.FallbackDepartmentID)
	assert.Equal(t, "frontend", cfg.FallbackTeamID)
	assert.False(t, cfg.StrictReferences)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 30*time.Second, cfg.StateMaxAge)
	assert.NotEmpty(t, cfg.CORSOrigins)
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("STRICT_REFERENCES", "true")
	t.Setenv("STORE_TIMEOUT", "750ms")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.True(t, cfg.StrictReferences)
	assert.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestFromEnv_RequiredAndInvalid(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("SESSION_SECRET", "secret")
	t.Setenv("EDIT_PASSWORD", "pw")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "DB_DSN")

	setRequired(t)
	t.Setenv("STORE_TIMEOUT", "soon")
	_, err = FromEnv()
	assert.ErrorContains(t, err, "STORE_TIMEOUT")
}

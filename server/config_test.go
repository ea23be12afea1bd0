package server

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.False(t, cfg.Debug)
	assert.Equal(t, 1<<20, cfg.MaxBodyBytes)
	assert.Equal(t, 100, cfg.RateLimitPerSecond)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.NotEmpty(t, cfg.AccessCode)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("SKELETO_HOST", "0.0.0.0")
	t.Setenv("SKELETO_PORT", "9999")
	t.Setenv("SKELETO_DEBUG", "true")
	t.Setenv("SKELETO_MAX_BODY_BYTES", "2048")
	t.Setenv("SKELETO_RATE_LIMIT_RPS", "5")
	t.Setenv("SKELETO_RATE_LIMIT_BURST", "2")
	t.Setenv("SKELETO_TRUSTED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9999", cfg.Addr())
	assert.True(t, cfg.Debug)
	assert.Equal(t, 2048, cfg.MaxBodyBytes)
	assert.Equal(t, 5, cfg.RateLimitPerSecond)
	assert.Equal(t, 2, cfg.RateLimitBurst)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.TrustedOrigins)
}

func TestNewAccessCode(t *testing.T) {
	// Test: six digits, regenerated per call
	code := NewAccessCode()
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), code)

	// collisions are possible but vanishingly unlikely across a few draws
	distinct := map[string]bool{}
	for range 8 {
		distinct[NewAccessCode()] = true
	}
	assert.Greater(t, len(distinct), 1)
}

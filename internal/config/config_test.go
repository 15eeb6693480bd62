package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
linkedin_email: user@example.com
linkedin_password: hunter2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Safety.MaxActionsPerDay)
	assert.Equal(t, 300, cfg.Safety.MinDelaySeconds)
	assert.Equal(t, 900, cfg.Safety.MaxDelaySeconds)
	assert.Equal(t, []string{"Technical Recruiter"}, cfg.Search.RecruiterKeywords)
	assert.Equal(t, 50.0, cfg.Search.MinMatchScore)
	assert.Equal(t, "sessions", cfg.StatePath)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
linkedin_email: stale@example.com
linkedin_password: stale
`)
	t.Setenv("LINKEDIN_EMAIL", "fresh@example.com")
	t.Setenv("LINKEDIN_PASSWORD", "fresh-secret")
	t.Setenv("DATABASE_URL", "postgres://copilot@localhost/ledger")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fresh@example.com", cfg.LinkedInEmail)
	assert.Equal(t, "fresh-secret", cfg.LinkedInPassword)
	assert.Equal(t, "postgres://copilot@localhost/ledger", cfg.DatabaseURL)
}

func TestLoad_MissingCredentials(t *testing.T) {
	path := writeConfig(t, `
safety:
  max_actions_per_day: 5
`)
	t.Setenv("LINKEDIN_EMAIL", "")
	t.Setenv("LINKEDIN_PASSWORD", "")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_DelayBoundsValidated(t *testing.T) {
	path := writeConfig(t, `
linkedin_email: user@example.com
linkedin_password: hunter2
safety:
  min_delay_between_actions: 900
  max_delay_between_actions: 300
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "min_delay_between_actions")
}

func TestSafety_DurationHelpers(t *testing.T) {
	s := Safety{MinDelaySeconds: 300, MaxDelaySeconds: 900}
	assert.Equal(t, "5m0s", s.MinDelay().String())
	assert.Equal(t, "15m0s", s.MaxDelay().String())
}

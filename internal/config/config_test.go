package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
jwt:
  secret: dev-secret
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 20, cfg.Revision.DefaultQueueLimit)
	assert.Equal(t, 100, cfg.Revision.MaxQueueLimit)
	assert.Equal(t, 10, cfg.Cache.TestTTLMinutes)
	assert.Equal(t, "exam_prep.events", cfg.Events.Exchange)
	assert.Empty(t, cfg.Events.AMQPURL)
}

func TestLoadConfig_ReleaseRequiresStrongSecret(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: release
jwt:
  secret: short
`)

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfig_RejectsInconsistentRevisionLimits(t *testing.T) {
	dir := writeConfig(t, `
revision:
  default_queue_limit: 50
  max_queue_limit: 10
`)

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestLoadConfig_RejectsUnknownMode(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: production
`)

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

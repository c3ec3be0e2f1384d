package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Content.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Content.TableTimeout)
	assert.Equal(t, 20, cfg.Content.AppointmentsCap)
	assert.Equal(t, int64(500<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, "barber-assets", cfg.Supabase.Bucket)
	assert.Equal(t, "barbershop.events", cfg.Redis.Channel)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  port: 8080\ncontent:\n  timeout: 4s\n  table_timeout: 2s\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("VITE_SUPABASE_URL", "https://example.supabase.co")
	t.Setenv("SUPABASE_ANON_KEY", "anon")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/postgres")
	t.Setenv("BARBER_CONTENT_APPOINTMENTS_CAP", "5")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 4*time.Second, cfg.Content.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Content.TableTimeout)
	assert.Equal(t, 5, cfg.Content.AppointmentsCap)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "https://example.supabase.co", cfg.Supabase.URL)
	assert.True(t, cfg.Supabase.Configured())
	assert.Equal(t, "postgres://u:p@db:5432/postgres", cfg.Database.DSN())
}

func TestPrimaryEnvNameWins(t *testing.T) {
	t.Setenv("SUPABASE_URL", "https://primary.supabase.co")
	t.Setenv("VITE_SUPABASE_URL", "https://vite.supabase.co")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "https://primary.supabase.co", cfg.Supabase.URL)
}

func TestValidateRejectsTableTimeoutAboveOverall(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("content:\n  timeout: 1s\n  table_timeout: 2s\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	assert.Equal(t, "", DatabaseConfig{}.DSN())
	dsn := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}.DSN()
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", dsn)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quoteboard/internal/logging"
)

func TestDefaultsAreValid(t *testing.T) {
	require.NoError(t, Default().Validate())

	cfg, err := Load(NewViper(filepath.Join(t.TempDir(), "absent.yml")))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, filepath.Join("data", "posts.json"), cfg.PostsPath())
	assert.Equal(t, filepath.Join("data", "contacts.json"), cfg.ContactsPath())
}

func TestReadMissingExplicitFile(t *testing.T) {
	v := NewViper(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, Read(v))
}

func TestReadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quoteboard.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":3000"
  environment: Development
  shutdown_timeout: 2s
data:
  dir: /var/lib/quoteboard
  watch: true
log:
  level: debug
  format: json
`), 0o644))

	v := NewViper(path)
	require.NoError(t, Read(v))
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "/var/lib/quoteboard", cfg.Data.Dir)
	assert.Equal(t, "posts.json", cfg.Data.PostsFile)
	assert.True(t, cfg.Data.Watch)

	lc := cfg.LoggerConfig()
	assert.Equal(t, logging.LevelDebug, lc.Level)
	assert.Equal(t, "json", lc.Format)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("QUOTEBOARD_SERVER_ADDR", ":9999")
	t.Setenv("QUOTEBOARD_DATA_DIR", "/tmp/board")
	t.Setenv("QUOTEBOARD_SERVER_ENVIRONMENT", "development")

	cfg, err := Load(NewViper(""))
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "/tmp/board", cfg.Data.Dir)
	assert.Equal(t, EnvDevelopment, cfg.Server.Environment)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = " " }},
		{"unknown environment", func(c *Config) { c.Server.Environment = "staging" }},
		{"empty data dir", func(c *Config) { c.Data.Dir = "" }},
		{"posts file with separator", func(c *Config) { c.Data.PostsFile = "../posts.json" }},
		{"contacts file empty", func(c *Config) { c.Data.ContactsFile = "" }},
		{"same file twice", func(c *Config) { c.Data.ContactsFile = c.Data.PostsFile }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"no session secret", func(c *Config) { c.Session.Secret = "" }},
		{"no session name", func(c *Config) { c.Session.Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWarnings(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Len(t, cfg.Warnings(), 1)
	assert.Contains(t, cfg.Warnings()[0], "session.secret")

	cfg.Session.Secret = "a real secret"
	assert.Empty(t, cfg.Warnings())

	dev := Default()
	dev.Server.Environment = EnvDevelopment
	assert.Empty(t, dev.Warnings())
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quoteboard.yml")
	want := Default()
	want.Server.Addr = ":7070"
	want.Data.Watch = true

	require.NoError(t, WriteYAML(want, path))
	assert.Error(t, WriteYAML(want, path), "existing files are not overwritten")

	v := NewViper(path)
	require.NoError(t, Read(v))
	got, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, BackendSheets, cfg.Spreadsheet.Backend)
	assert.Equal(t, 4*time.Second, cfg.API.RequestDelay)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Spreadsheet.LocalDir)
}

func TestLoadFrom_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tagsync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
spreadsheet:
  backend: local
  local_dir: `+dir+`
workspace:
  path: accounts/1/containers/2/workspaces/3
api:
  request_delay: 250ms
actor: analyst@example.com
`), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, BackendLocal, cfg.Spreadsheet.Backend)
	assert.Equal(t, dir, cfg.Spreadsheet.LocalDir)
	assert.Equal(t, "accounts/1/containers/2/workspaces/3", cfg.Workspace.Path)
	assert.Equal(t, 250*time.Millisecond, cfg.API.RequestDelay)
	assert.Equal(t, "analyst@example.com", cfg.Actor)
	assert.Equal(t, "info", cfg.Logging.Level, "unset keys keep their defaults")
	assert.NoError(t, cfg.Validate())
}

func TestLoadFrom_Environment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TAGSYNC_SPREADSHEET_ID", "sheet-123")
	t.Setenv("TAGSYNC_LOGGING_LEVEL", "debug")
	t.Setenv("TAGSYNC_API_REQUEST_DELAY", "1s")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/tmp/key.json")

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "sheet-123", cfg.Spreadsheet.ID)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, time.Second, cfg.API.RequestDelay)
	assert.Equal(t, "/tmp/key.json", cfg.Google.CredentialsFile)
}

func TestLoadFrom_MissingExplicitFile(t *testing.T) {
	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := LoadFrom(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"sheets without id", func(c *Config) {}, "spreadsheet.id is required"},
		{"sheets with id", func(c *Config) { c.Spreadsheet.ID = "abc" }, ""},
		{"local", func(c *Config) { c.Spreadsheet.Backend = BackendLocal }, ""},
		{"unknown backend", func(c *Config) { c.Spreadsheet.Backend = "excel" }, `unknown spreadsheet backend "excel"`},
		{"negative delay", func(c *Config) {
			c.Spreadsheet.ID = "abc"
			c.API.RequestDelay = -time.Second
		}, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/.tagsync/workbook")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".tagsync", "workbook"), got)

	got, err = expandPath("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", got)
}

func writeCredentials(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "key.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCredentialsChecker(t *testing.T) {
	dir := t.TempDir()
	serviceAccount := writeCredentials(t, dir, `{"type":"service_account","client_email":"sync@proj.iam.gserviceaccount.com","project_id":"proj"}`)

	env := map[string]string{}
	checker := &CredentialsChecker{
		getenv:  func(k string) string { return env[k] },
		homeDir: func() (string, error) { return t.TempDir(), nil },
	}

	t.Run("nothing configured", func(t *testing.T) {
		result := checker.Check(DefaultConfig())
		assert.False(t, result.Found)
		assert.Equal(t, SourceNone, result.Source)
	})

	t.Run("environment", func(t *testing.T) {
		env["GOOGLE_APPLICATION_CREDENTIALS"] = serviceAccount
		defer delete(env, "GOOGLE_APPLICATION_CREDENTIALS")

		result := checker.Check(DefaultConfig())
		assert.True(t, result.Found)
		assert.Equal(t, SourceEnvironment, result.Source)
		assert.Equal(t, "sync@proj.iam.gserviceaccount.com", result.ClientEmail)
	})

	t.Run("config file wins", func(t *testing.T) {
		env["GOOGLE_APPLICATION_CREDENTIALS"] = "/nonexistent.json"
		defer delete(env, "GOOGLE_APPLICATION_CREDENTIALS")

		cfg := DefaultConfig()
		cfg.Google.CredentialsFile = serviceAccount
		result := checker.Check(cfg)
		assert.True(t, result.Found)
		assert.Equal(t, SourceConfigFile, result.Source)
		assert.Equal(t, "service_account", result.Type)
	})

	t.Run("unreadable file", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Google.CredentialsFile = filepath.Join(dir, "missing.json")
		result := checker.Check(cfg)
		assert.False(t, result.Found)
		assert.Contains(t, result.Message, "failed to read credentials file")
	})
}

func TestParseCredentialsInfo(t *testing.T) {
	info, err := ParseCredentialsInfo([]byte(`{"type":"authorized_user","client_id":"x"}`))
	require.NoError(t, err)
	assert.Equal(t, "authorized_user", info.Type)
	assert.Empty(t, info.ClientEmail)

	_, err = ParseCredentialsInfo([]byte(`{}`))
	assert.Error(t, err)

	_, err = ParseCredentialsInfo([]byte(`not json`))
	assert.Error(t, err)
}

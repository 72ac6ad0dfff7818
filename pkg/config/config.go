package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendSheets = "sheets"
	BackendLocal  = "local"
)

// Config represents the complete tagsync configuration
type Config struct {
	Google      GoogleConfig      `mapstructure:"google"`
	Spreadsheet SpreadsheetConfig `mapstructure:"spreadsheet"`
	Workspace   WorkspaceConfig   `mapstructure:"workspace"`
	API         APIConfig         `mapstructure:"api"`
	Actor       string            `mapstructure:"actor"`
	Output      OutputConfig      `mapstructure:"output"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// GoogleConfig selects the credentials used for both APIs
type GoogleConfig struct {
	// CredentialsFile is a service account or authorized user JSON file.
	// Empty means Application Default Credentials.
	CredentialsFile string `mapstructure:"credentials_file"`
}

// SpreadsheetConfig selects the workbook backend
type SpreadsheetConfig struct {
	ID       string `mapstructure:"id"`
	Backend  string `mapstructure:"backend"`
	LocalDir string `mapstructure:"local_dir"`
}

// WorkspaceConfig pins the Tag Manager workspace. When Path is empty the
// checked row of the GTM Workspace sheet is used.
type WorkspaceConfig struct {
	Path string `mapstructure:"path"`
	Name string `mapstructure:"name"`
}

// APIConfig tunes calls to the Tag Manager API
type APIConfig struct {
	RequestDelay time.Duration `mapstructure:"request_delay"`
}

// OutputConfig contains output formatting configuration
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Spreadsheet: SpreadsheetConfig{
			Backend:  BackendSheets,
			LocalDir: filepath.Join(homeDir, ".tagsync", "workbook"),
		},
		API: APIConfig{
			RequestDelay: 4 * time.Second,
		},
		Output: OutputConfig{
			Format: "table",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from the global viper instance
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom loads configuration from config files, the environment and any
// flags already bound to v
func LoadFrom(v *viper.Viper) (*Config, error) {
	config := DefaultConfig()

	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".tagsync"))
		}
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("TAGSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only sees keys viper already knows about
	for _, key := range []string{
		"spreadsheet.id",
		"spreadsheet.backend",
		"spreadsheet.local_dir",
		"workspace.path",
		"workspace.name",
		"api.request_delay",
		"actor",
		"output.format",
		"output.no_color",
		"logging.level",
		"logging.format",
	} {
		_ = v.BindEnv(key)
	}
	_ = v.BindEnv("google.credentials_file", "TAGSYNC_GOOGLE_CREDENTIALS_FILE", "GOOGLE_APPLICATION_CREDENTIALS")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.ExpandPaths(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Spreadsheet.Backend {
	case BackendSheets:
		if c.Spreadsheet.ID == "" {
			return fmt.Errorf("spreadsheet.id is required when spreadsheet.backend is %q", BackendSheets)
		}
	case BackendLocal:
		if c.Spreadsheet.LocalDir == "" {
			return fmt.Errorf("spreadsheet.local_dir is required when spreadsheet.backend is %q", BackendLocal)
		}
	default:
		return fmt.Errorf("unknown spreadsheet backend %q (use %s or %s)", c.Spreadsheet.Backend, BackendSheets, BackendLocal)
	}

	if c.API.RequestDelay < 0 {
		return fmt.Errorf("api.request_delay must not be negative")
	}

	return nil
}

// UsesSheets reports whether the Google Sheets backend is selected
func (c *Config) UsesSheets() bool {
	return c.Spreadsheet.Backend == BackendSheets
}

// ExpandPaths expands home directory paths
func (c *Config) ExpandPaths() error {
	var err error
	c.Spreadsheet.LocalDir, err = expandPath(c.Spreadsheet.LocalDir)
	if err != nil {
		return fmt.Errorf("failed to expand spreadsheet local dir: %w", err)
	}

	c.Google.CredentialsFile, err = expandPath(c.Google.CredentialsFile)
	if err != nil {
		return fmt.Errorf("failed to expand credentials file path: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path, err
	}

	if len(path) == 1 {
		return home, nil
	}

	return filepath.Join(home, path[1:]), nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// CredentialSource names where Google credentials were found
type CredentialSource string

const (
	SourceConfigFile  CredentialSource = "config file"
	SourceEnvironment CredentialSource = "GOOGLE_APPLICATION_CREDENTIALS"
	SourceGcloud      CredentialSource = "gcloud application default"
	SourceNone        CredentialSource = "none"
)

// AuthResult contains the outcome of a credentials check
type AuthResult struct {
	Found       bool
	Source      CredentialSource
	Path        string
	Type        string // service_account, authorized_user, ...
	ClientEmail string
	Message     string
}

// CredentialsChecker locates Google credentials without contacting Google
type CredentialsChecker struct {
	getenv  func(string) string
	homeDir func() (string, error)
}

// NewCredentialsChecker creates a checker reading the process environment
func NewCredentialsChecker() *CredentialsChecker {
	return &CredentialsChecker{
		getenv:  os.Getenv,
		homeDir: os.UserHomeDir,
	}
}

// Check follows the lookup order of Application Default Credentials,
// preceded by an explicitly configured file
func (c *CredentialsChecker) Check(cfg *Config) AuthResult {
	if cfg != nil && cfg.Google.CredentialsFile != "" {
		return c.inspect(SourceConfigFile, cfg.Google.CredentialsFile)
	}

	if path := c.getenv("GOOGLE_APPLICATION_CREDENTIALS"); path != "" {
		return c.inspect(SourceEnvironment, path)
	}

	if path := c.gcloudPath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			return c.inspect(SourceGcloud, path)
		}
	}

	return AuthResult{
		Source:  SourceNone,
		Message: "no credentials file found; metadata server credentials may still apply",
	}
}

func (c *CredentialsChecker) inspect(source CredentialSource, path string) AuthResult {
	result := AuthResult{Source: source, Path: path}

	info, err := ReadCredentialsInfo(path)
	if err != nil {
		result.Message = err.Error()
		return result
	}

	result.Found = true
	result.Type = info.Type
	result.ClientEmail = info.ClientEmail
	result.Message = fmt.Sprintf("%s credentials", info.Type)
	if info.ClientEmail != "" {
		result.Message += " for " + info.ClientEmail
	}
	return result
}

func (c *CredentialsChecker) gcloudPath() string {
	if runtime.GOOS == "windows" {
		if appData := c.getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "gcloud", "application_default_credentials.json")
		}
		return ""
	}
	home, err := c.homeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gcloud", "application_default_credentials.json")
}

// CredentialsInfo is the subset of a credentials JSON file tagsync reads
type CredentialsInfo struct {
	Type        string `json:"type"`
	ClientEmail string `json:"client_email"`
	ProjectID   string `json:"project_id"`
}

// ReadCredentialsInfo parses the identifying fields of a credentials file
func ReadCredentialsInfo(path string) (*CredentialsInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file %s: %w", path, err)
	}
	return ParseCredentialsInfo(data)
}

// ParseCredentialsInfo parses the identifying fields of credentials JSON
func ParseCredentialsInfo(data []byte) (*CredentialsInfo, error) {
	var info CredentialsInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("invalid credentials JSON: %w", err)
	}
	if info.Type == "" {
		return nil, fmt.Errorf("credentials JSON has no type field")
	}
	return &info, nil
}

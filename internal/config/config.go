// Package config loads pipeline configuration from YAML files and provider
// credentials from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/alnah/go-mdtranslate/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config holds all configuration for a translation run.
type Config struct {
	Languages []string     `yaml:"languages"` // target language codes
	Provider  string       `yaml:"provider"`  // "auto", "deepl", "azure"
	Output    OutputConfig `yaml:"output"`
	Header    HeaderConfig `yaml:"header"`
	Source    SourceConfig `yaml:"source"`
	Cloud     CloudConfig  `yaml:"cloud"`
}

// OutputConfig defines which artifacts are produced and where.
type OutputConfig struct {
	Dir   string `yaml:"dir"`   // local output root (default "translated")
	Docx  bool   `yaml:"docx"`  // write DOCX files
	PDF   bool   `yaml:"pdf"`   // convert DOCX to PDF when LibreOffice exists
	Cloud bool   `yaml:"cloud"` // publish to Google Docs
}

// HeaderConfig defines the banner image placed in document headers.
type HeaderConfig struct {
	Image string `yaml:"image"` // path or URL (empty = no header image)
}

// SourceConfig controls rendering of the untranslated source document.
type SourceConfig struct {
	Include bool   `yaml:"include"`
	Lang    string `yaml:"lang"` // source language code (default "es")
}

// CloudConfig locates Google credentials and the Drive destination.
type CloudConfig struct {
	CredentialsFile string `yaml:"credentialsFile"` // default secrets/credentials.json
	TokenFile       string `yaml:"tokenFile"`       // default secrets/token.json
	FolderID        string `yaml:"folderId"`        // Drive parent folder for output
}

// DefaultConfig returns the configuration used when no file is given:
// local Markdown, DOCX and PDF output, provider chosen from credentials.
func DefaultConfig() *Config {
	return &Config{
		Provider: "auto",
		Output:   OutputConfig{Dir: "translated", Docx: true, PDF: true},
		Source:   SourceConfig{Include: false, Lang: "es"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return cfg, nil
}

// Credentials carries provider and cloud secrets read from the environment.
type Credentials struct {
	DeepLKey        string `envconfig:"DEEPL_API_KEY"`
	AzureKey        string `envconfig:"AZURE_TRANSLATOR_KEY"`
	AzureRegion     string `envconfig:"AZURE_TRANSLATOR_REGION"`
	CredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE"`
	TokenFile       string `envconfig:"GOOGLE_TOKEN_FILE"`
	FolderID        string `envconfig:"GDRIVE_FOLDER_ID"`
}

// LoadCredentials reads secrets from the environment, loading a .env file
// first when one exists in the working directory.
func LoadCredentials() (*Credentials, error) {
	_ = godotenv.Load()

	var creds Credentials
	if err := envconfig.Process("", &creds); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return &creds, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-mdtranslate/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-mdtranslate", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Package yaml provides YAML-based signing profile parsing.
package yaml

import (
	"fmt"
	"os"

	"github.com/signdroid/signdroid/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlProfile represents the raw YAML structure
type yamlProfile struct {
	ReleaseDirectory    string `yaml:"release_directory"`
	Alias               string `yaml:"alias"`
	BuildToolsVersion   string `yaml:"build_tools_version"`
	KeyStorePasswordEnv string `yaml:"keystore_password_env"`
	KeyPasswordEnv      string `yaml:"key_password_env"`
	Recursive           bool   `yaml:"recursive"`
}

// ProfileParser parses signing profile YAML files
type ProfileParser struct{}

// NewProfileParser creates a new profile parser
func NewProfileParser() *ProfileParser {
	return &ProfileParser{}
}

// ParseFile reads and validates a signing profile from a YAML file
func (p *ProfileParser) ParseFile(path string) (*entities.SigningProfile, error) {
	//nolint:gosec // G304: profile path is user-provided configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	return p.Parse(data)
}

// Parse parses and validates signing profile YAML content
func (p *ProfileParser) Parse(data []byte) (*entities.SigningProfile, error) {
	var raw yamlProfile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	profile := &entities.SigningProfile{
		ReleaseDirectory:    raw.ReleaseDirectory,
		Alias:               raw.Alias,
		BuildToolsVersion:   raw.BuildToolsVersion,
		KeyStorePasswordEnv: raw.KeyStorePasswordEnv,
		KeyPasswordEnv:      raw.KeyPasswordEnv,
		Recursive:           raw.Recursive,
	}

	if err := p.validate(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (p *ProfileParser) validate(profile *entities.SigningProfile) error {
	if profile.ReleaseDirectory == "" {
		return fmt.Errorf("profile is missing release_directory")
	}
	if profile.Alias == "" {
		return fmt.Errorf("profile is missing alias")
	}
	return nil
}

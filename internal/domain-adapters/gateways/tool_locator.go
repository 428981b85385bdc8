package gateways

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/signdroid/signdroid/internal/domain/entities"
)

// DefaultBuildToolsVersion is used when neither the build-tools input nor
// the environment supplies a version.
const DefaultBuildToolsVersion = "35.0.0"

// ToolLocatorConfig holds the resolved configuration for tool lookup.
// Environment variables are read by the cmd layer and passed in here, so the
// locator stays testable without environment mutation.
type ToolLocatorConfig struct {
	SDKRoot           string
	BuildToolsVersion string
}

// ToolLocator resolves the external signing tools before any work begins
type ToolLocator struct {
	config ToolLocatorConfig
}

// NewToolLocator creates a new tool locator
func NewToolLocator(config ToolLocatorConfig) *ToolLocator {
	if config.BuildToolsVersion == "" {
		config.BuildToolsVersion = DefaultBuildToolsVersion
	}
	return &ToolLocator{config: config}
}

// Resolve locates zipalign, apksigner and jarsigner, failing fast when the
// environment is misconfigured. zipalign and apksigner are joined under the
// build-tools directory without individual existence checks; a missing tool
// surfaces when it is invoked. jarsigner comes from PATH.
func (l *ToolLocator) Resolve() (*entities.ToolSet, error) {
	if l.config.SDKRoot == "" {
		return nil, entities.NewConfigurationError(
			"ANDROID_HOME is not set and no SDK root was provided; there is no fallback")
	}

	buildToolsDir := filepath.Join(l.config.SDKRoot, "build-tools", l.config.BuildToolsVersion)
	if info, err := os.Stat(buildToolsDir); err != nil || !info.IsDir() {
		return nil, entities.NewConfigurationError(
			"build-tools directory does not exist: %s", buildToolsDir)
	}

	jarSigner, err := exec.LookPath("jarsigner")
	if err != nil {
		return nil, fmt.Errorf("%w: jarsigner", entities.ErrToolNotFound)
	}

	return &entities.ToolSet{
		ZipAlign:  filepath.Join(buildToolsDir, "zipalign"),
		ApkSigner: filepath.Join(buildToolsDir, "apksigner"),
		JarSigner: jarSigner,
	}, nil
}

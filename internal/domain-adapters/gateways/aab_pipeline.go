package gateways

import (
	"context"

	"github.com/signdroid/signdroid/internal/domain/entities"
	"github.com/signdroid/signdroid/internal/domain/interfaces"
)

// AABPipeline signs an Android App Bundle in place with jarsigner. Bundles
// have no alignment or verification stage; the archive signer needs neither.
type AABPipeline struct {
	runner *CommandRunner
	logger interfaces.Logger
}

// NewAABPipeline creates a new AAB signing pipeline
func NewAABPipeline(runner *CommandRunner, logger interfaces.Logger) *AABPipeline {
	return &AABPipeline{runner: runner, logger: logger}
}

// Sign signs the bundle and returns the same path it was given; jarsigner
// rewrites the archive in place.
func (p *AABPipeline) Sign(ctx context.Context, tools *entities.ToolSet, creds entities.SigningCredentials, aabPath string) (string, error) {
	p.logger.Info("signing AAB", interfaces.F("aab", aabPath))

	args := []string{
		"-keystore", creds.KeyFilePath,
		"-storepass", creds.KeyStorePassword,
	}
	if creds.KeyPassword != "" {
		args = append(args, "-keypass", creds.KeyPassword)
	}
	args = append(args, aabPath, creds.Alias)

	if _, err := p.runner.Run(ctx, tools.JarSigner, args...); err != nil {
		return "", err
	}

	return aabPath, nil
}

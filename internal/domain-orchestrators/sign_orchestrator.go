// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/signdroid/signdroid/internal/domain/entities"
	"github.com/signdroid/signdroid/internal/domain/interfaces"
)

// ToolResolver interface for locating the external signing tools
type ToolResolver interface {
	Resolve() (*entities.ToolSet, error)
}

// ArtifactDiscoverer interface for finding release artifacts
type ArtifactDiscoverer interface {
	Find(releaseDir string) ([]entities.ArtifactFile, error)
}

// ArtifactSigner interface implemented by the APK and AAB pipelines
type ArtifactSigner interface {
	Sign(ctx context.Context, tools *entities.ToolSet, creds entities.SigningCredentials, path string) (string, error)
}

// KeystoreVerifier interface for the optional keystore provenance check
type KeystoreVerifier interface {
	VerifyKeystore(keystorePath string) error
}

// SignOrchestrator coordinates the complete artifact signing workflow
type SignOrchestrator struct {
	resolver         ToolResolver
	discoverer       ArtifactDiscoverer
	apkPipeline      ArtifactSigner
	aabPipeline      ArtifactSigner
	keystoreVerifier KeystoreVerifier
	logger           interfaces.Logger
	releaseDir       string
}

// SignOrchestratorConfig holds configuration for the orchestrator
type SignOrchestratorConfig struct {
	ReleaseDir string
	// KeystoreVerifier is optional; nil skips the provenance check
	KeystoreVerifier KeystoreVerifier
}

// NewSignOrchestrator creates a new signing orchestrator
func NewSignOrchestrator(
	resolver ToolResolver,
	discoverer ArtifactDiscoverer,
	apkPipeline ArtifactSigner,
	aabPipeline ArtifactSigner,
	logger interfaces.Logger,
	config SignOrchestratorConfig,
) *SignOrchestrator {
	return &SignOrchestrator{
		resolver:         resolver,
		discoverer:       discoverer,
		apkPipeline:      apkPipeline,
		aabPipeline:      aabPipeline,
		keystoreVerifier: config.KeystoreVerifier,
		logger:           logger,
		releaseDir:       config.ReleaseDir,
	}
}

// SignRunResult contains the outcome of one signing run
type SignRunResult struct {
	Results       []entities.PipelineResult
	FailedCount   int
	TotalDuration time.Duration
}

// SignedOutputs returns the output paths of all successful results
func (r *SignRunResult) SignedOutputs() []string {
	var outputs []string
	for _, result := range r.Results {
		if result.Succeeded {
			outputs = append(outputs, result.OutputPath)
		}
	}
	return outputs
}

// Run signs every artifact in the release directory. Tool resolution and the
// keystore check abort the run before any artifact is touched; a failure
// inside one artifact's pipeline is recorded in its result and the run
// continues, so one bad artifact does not hide the state of its siblings.
// The returned error is non-nil if any artifact failed.
func (o *SignOrchestrator) Run(ctx context.Context, creds entities.SigningCredentials) (*SignRunResult, error) {
	startTime := time.Now()

	if err := creds.Validate(); err != nil {
		return nil, err
	}

	// Step 1: resolve tools; nothing can proceed without them
	tools, err := o.resolver.Resolve()
	if err != nil {
		return nil, err
	}
	o.logger.Debug("resolved signing tools",
		interfaces.F("zipalign", tools.ZipAlign),
		interfaces.F("apksigner", tools.ApkSigner),
		interfaces.F("jarsigner", tools.JarSigner))

	// Step 2: optional keystore provenance check. A keystore that fails it
	// must not sign anything, so this aborts like a configuration error.
	if o.keystoreVerifier != nil {
		if err := o.keystoreVerifier.VerifyKeystore(creds.KeyFilePath); err != nil {
			return nil, entities.NewConfigurationError("keystore provenance check failed: %v", err)
		}
		o.logger.Info("keystore provenance verified")
	}

	// Step 3: discover artifacts
	artifacts, err := o.discoverer.Find(o.releaseDir)
	if err != nil {
		return nil, err
	}
	if len(artifacts) == 0 {
		return nil, entities.NewConfigurationError("no .apk or .aab artifacts found in %s", o.releaseDir)
	}
	o.logger.Info("discovered artifacts",
		interfaces.F("dir", o.releaseDir),
		interfaces.F("count", len(artifacts)))

	// Step 4: sign each artifact, continuing past per-artifact failures
	runResult := &SignRunResult{}
	for _, artifact := range artifacts {
		result := o.signOne(ctx, tools, creds, artifact)
		if !result.Succeeded {
			runResult.FailedCount++
			o.logger.Error("artifact failed",
				interfaces.F("input", result.InputPath),
				interfaces.F("error", result.ErrorMessage))
		} else {
			o.logger.Info("artifact signed",
				interfaces.F("input", result.InputPath),
				interfaces.F("output", result.OutputPath))
		}
		runResult.Results = append(runResult.Results, result)
	}
	runResult.TotalDuration = time.Since(startTime)

	if runResult.FailedCount > 0 {
		return runResult, fmt.Errorf("%d of %d artifacts failed to sign:\n%s",
			runResult.FailedCount, len(runResult.Results), runResult.failureSummary())
	}

	return runResult, nil
}

func (o *SignOrchestrator) signOne(ctx context.Context, tools *entities.ToolSet, creds entities.SigningCredentials, artifact entities.ArtifactFile) entities.PipelineResult {
	var pipeline ArtifactSigner
	switch artifact.Type {
	case entities.ArtifactAPK:
		pipeline = o.apkPipeline
	case entities.ArtifactAAB:
		pipeline = o.aabPipeline
	default:
		return entities.FailedResult(artifact.Path,
			fmt.Errorf("unsupported artifact type %q", artifact.Type))
	}

	outputPath, err := pipeline.Sign(ctx, tools, creds, artifact.Path)
	if err != nil {
		return entities.FailedResult(artifact.Path, err)
	}
	return entities.SucceededResult(artifact.Path, outputPath)
}

func (r *SignRunResult) failureSummary() string {
	var lines []string
	for _, result := range r.Results {
		if !result.Succeeded {
			lines = append(lines, fmt.Sprintf("  %s: %s", result.InputPath, result.ErrorMessage))
		}
	}
	return strings.Join(lines, "\n")
}

package gateways

import (
	"context"
	"io"
	"os"

	"github.com/signdroid/signdroid/internal/domain/entities"
	"github.com/signdroid/signdroid/internal/domain/interfaces"
	"github.com/signdroid/signdroid/internal/domain/services"
)

// APKPipeline produces a zip-aligned, signed, verified copy of an APK.
// Stages run strictly in order and the first failure aborts the pipeline;
// the external tools are deterministic, so nothing is retried.
type APKPipeline struct {
	runner *CommandRunner
	logger interfaces.Logger
}

// NewAPKPipeline creates a new APK signing pipeline
func NewAPKPipeline(runner *CommandRunner, logger interfaces.Logger) *APKPipeline {
	return &APKPipeline{runner: runner, logger: logger}
}

// Sign runs align, sign and verify for one APK and returns the signed
// file's path.
func (p *APKPipeline) Sign(ctx context.Context, tools *entities.ToolSet, creds entities.SigningCredentials, apkPath string) (string, error) {
	alignedPath, err := p.align(ctx, tools, apkPath)
	if err != nil {
		return "", err
	}

	signedPath, err := p.sign(ctx, tools, creds, apkPath, alignedPath)
	if err != nil {
		return "", err
	}

	if err := p.verify(ctx, tools, signedPath); err != nil {
		return "", err
	}

	return signedPath, nil
}

// align runs zipalign in check mode and then copies the input under the
// -aligned.apk name. The input's alignment is checked, never rewritten: the
// aligned file is a byte copy of the original. This matches the historical
// pipeline behavior and keeps output file identity reproducible.
func (p *APKPipeline) align(ctx context.Context, tools *entities.ToolSet, apkPath string) (string, error) {
	p.logger.Info("checking zip alignment", interfaces.F("apk", apkPath))

	result, err := p.runner.Run(ctx, tools.ZipAlign, "-c", "-v", "4", apkPath)
	if result != nil && result.Output != "" {
		p.logger.Debug("zipalign output", interfaces.F("output", result.Output))
	}
	if err != nil {
		return "", err
	}

	alignedPath := services.AlignedAPKPath(apkPath)
	if err := copyFile(apkPath, alignedPath); err != nil {
		return "", err
	}

	return alignedPath, nil
}

// sign invokes apksigner against the aligned copy. The output name derives
// from the original input's name, not the aligned copy's.
func (p *APKPipeline) sign(ctx context.Context, tools *entities.ToolSet, creds entities.SigningCredentials, apkPath, alignedPath string) (string, error) {
	signedPath := services.SignedAPKPath(apkPath)
	p.logger.Info("signing APK", interfaces.F("out", signedPath))

	args := []string{
		"sign",
		"--ks", creds.KeyFilePath,
		"--ks-key-alias", creds.Alias,
		"--ks-pass", "pass:" + creds.KeyStorePassword,
		"--out", signedPath,
	}
	if creds.KeyPassword != "" {
		args = append(args, "--key-pass", "pass:"+creds.KeyPassword)
	}
	args = append(args, alignedPath)

	if _, err := p.runner.Run(ctx, tools.ApkSigner, args...); err != nil {
		return "", err
	}

	return signedPath, nil
}

// verify runs apksigner verify on the signed file. Only the exit status
// matters; the verification report is not parsed.
func (p *APKPipeline) verify(ctx context.Context, tools *entities.ToolSet, signedPath string) error {
	p.logger.Info("verifying signed APK", interfaces.F("apk", signedPath))

	_, err := p.runner.Run(ctx, tools.ApkSigner, "verify", signedPath)
	return err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return entities.NewFilesystemError("failed to open %s: %v", src, err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return entities.NewFilesystemError("failed to create %s: %v", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return entities.NewFilesystemError("failed to copy %s to %s: %v", src, dst, err)
	}

	if err := out.Close(); err != nil {
		return entities.NewFilesystemError("failed to close %s: %v", dst, err)
	}

	return nil
}

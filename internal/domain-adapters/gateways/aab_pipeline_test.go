package gateways

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/signdroid/signdroid/internal/domain/entities"
	"github.com/signdroid/signdroid/internal/domain/interfaces"
)

func TestAABPipeline_Sign_Success(t *testing.T) {
	tools, _ := stubToolSet(t, "exit 0")
	dir := t.TempDir()
	aabPath := writeArtifact(t, dir, "bundle.aab")

	pipeline := NewAABPipeline(NewCommandRunner(0), &interfaces.NoOpLogger{})
	outPath, err := pipeline.Sign(context.Background(), tools, testCredentials("keypass"), aabPath)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	// Bundles are signed in place, no renaming
	if outPath != aabPath {
		t.Errorf("Sign() = %q, want the input path %q", outPath, aabPath)
	}

	calls := recordedArgs(t, tools.JarSigner)
	if len(calls) != 1 {
		t.Fatalf("jarsigner invoked %d times, want 1", len(calls))
	}
	want := "-keystore /tmp/signingKey.jks -storepass storepass -keypass keypass " + aabPath + " release"
	if calls[0] != want {
		t.Errorf("jarsigner args = %q, want %q", calls[0], want)
	}
}

func TestAABPipeline_Sign_OmitsKeyPassWhenAbsent(t *testing.T) {
	tools, _ := stubToolSet(t, "exit 0")
	dir := t.TempDir()
	aabPath := writeArtifact(t, dir, "bundle.aab")

	pipeline := NewAABPipeline(NewCommandRunner(0), &interfaces.NoOpLogger{})
	if _, err := pipeline.Sign(context.Background(), tools, testCredentials(""), aabPath); err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	args := recordedArgs(t, tools.JarSigner)[0]
	if strings.Contains(args, "-keypass") {
		t.Errorf("jarsigner args = %q, must not contain -keypass without a key password", args)
	}
}

func TestAABPipeline_Sign_Failure(t *testing.T) {
	toolDir := t.TempDir()
	tools := &entities.ToolSet{
		JarSigner: stubTool(t, toolDir, "jarsigner", "echo 'keystore was tampered with'; exit 1"),
	}
	dir := t.TempDir()
	aabPath := writeArtifact(t, dir, "bundle.aab")

	pipeline := NewAABPipeline(NewCommandRunner(0), &interfaces.NoOpLogger{})
	_, err := pipeline.Sign(context.Background(), tools, testCredentials(""), aabPath)
	if err == nil {
		t.Fatal("Sign() should fail when jarsigner fails")
	}
	if !errors.Is(err, entities.ErrExternalProcess) {
		t.Errorf("Sign() error kind = %v, want ErrExternalProcess", err)
	}
}

package gateways

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/signdroid/signdroid/internal/domain/entities"
)

func writeArtifact(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("zip content"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestArtifactFinder_Find(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "app.apk")
	writeArtifact(t, dir, "bundle.aab")
	writeArtifact(t, dir, "notes.txt")
	writeArtifact(t, dir, "mapping.json")

	finder := NewArtifactFinder(false)
	artifacts, err := finder.Find(dir)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	if len(artifacts) != 2 {
		t.Fatalf("Find() returned %d artifacts, want 2", len(artifacts))
	}

	// Sorted order: app.apk before bundle.aab
	if artifacts[0].Type != entities.ArtifactAPK || filepath.Base(artifacts[0].Path) != "app.apk" {
		t.Errorf("artifacts[0] = %+v, want app.apk typed APK", artifacts[0])
	}
	if artifacts[1].Type != entities.ArtifactAAB || filepath.Base(artifacts[1].Path) != "bundle.aab" {
		t.Errorf("artifacts[1] = %+v, want bundle.aab typed AAB", artifacts[1])
	}
}

func TestArtifactFinder_Find_SkipsDerivedOutputs(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "app.apk")
	writeArtifact(t, dir, "app-aligned.apk")
	writeArtifact(t, dir, "app-signed.apk")

	finder := NewArtifactFinder(false)
	artifacts, err := finder.Find(dir)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}

	if len(artifacts) != 1 {
		t.Fatalf("Find() returned %d artifacts, want only the original", len(artifacts))
	}
	if filepath.Base(artifacts[0].Path) != "app.apk" {
		t.Errorf("Find() kept %q, want app.apk", artifacts[0].Path)
	}
}

func TestArtifactFinder_Find_NonRecursiveIgnoresSubdirs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeArtifact(t, sub, "deep.apk")

	finder := NewArtifactFinder(false)
	artifacts, err := finder.Find(dir)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(artifacts) != 0 {
		t.Errorf("Find() returned %d artifacts, want 0 for nested-only dir", len(artifacts))
	}
}

func TestArtifactFinder_Find_Recursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "flavors", "paid")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeArtifact(t, sub, "deep.apk")
	writeArtifact(t, dir, "top.aab")

	finder := NewArtifactFinder(true)
	artifacts, err := finder.Find(dir)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(artifacts) != 2 {
		t.Errorf("Find() returned %d artifacts, want 2 with recursion", len(artifacts))
	}
}

func TestArtifactFinder_Find_MissingDirectory(t *testing.T) {
	finder := NewArtifactFinder(false)

	_, err := finder.Find(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("Find() should fail for a missing directory")
	}
	if !errors.Is(err, entities.ErrConfiguration) {
		t.Errorf("Find() error kind = %v, want ErrConfiguration", err)
	}
}

func TestArtifactFinder_Find_UppercaseExtensions(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, "APP.APK")

	finder := NewArtifactFinder(false)
	artifacts, err := finder.Find(dir)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if len(artifacts) != 1 || artifacts[0].Type != entities.ArtifactAPK {
		t.Errorf("Find() = %+v, want one APK regardless of extension case", artifacts)
	}
}
